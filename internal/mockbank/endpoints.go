package mockbank

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Endpoints is anything that can register its routes with the server's
// router.
type Endpoints interface {
	Register(router *mux.Router)
}

// InboundRequest bundles everything ServeRequest needs to handle one
// request.
type InboundRequest struct {
	W                   http.ResponseWriter
	R                   *http.Request
	ReqBodySchemaLoader gojsonschema.JSONLoader
	ReqBodyObj          interface{}
	EndpointLogic       func() (interface{}, error)
	SuccessCode         int
}

// BaseEndpoints provides the request-serving machinery shared by all
// endpoint implementations.
type BaseEndpoints struct {
	TokenAuthFilter Filter
}

func (b *BaseEndpoints) readAndValidateRequestBody(
	w http.ResponseWriter,
	r *http.Request,
	bodySchemaLoader gojsonschema.JSONLoader,
	bodyObj interface{},
) bool {
	defer r.Body.Close()
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		// Log it in case something is actually wrong...
		glog.Error(errors.Wrap(err, "error reading request body"))
		// But we're going to assume this is because the request body is
		// missing, so we'll treat it as a bad request.
		b.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			&ErrBadRequest{Reason: "could not read request body"},
		)
		return false
	}
	if bodySchemaLoader != nil {
		var validationResult *gojsonschema.Result
		validationResult, err = gojsonschema.Validate(
			bodySchemaLoader,
			gojsonschema.NewBytesLoader(bodyBytes),
		)
		if err != nil {
			// As long as the schema itself was valid, the most likely
			// scenario here is that the request body wasn't valid JSON.
			glog.Error(errors.Wrap(err, "error validating request body"))
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&ErrBadRequest{Reason: "could not validate request body"},
			)
			return false
		}
		if !validationResult.Valid() {
			verrStrs := make([]string, len(validationResult.Errors()))
			for i, verr := range validationResult.Errors() {
				verrStrs[i] = verr.String()
			}
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&ErrBadRequest{
					Reason:  "request body failed JSON validation",
					Details: verrStrs,
				},
			)
			return false
		}
	}
	if bodyObj != nil {
		if err = json.Unmarshal(bodyBytes, bodyObj); err != nil {
			// The body already validated, so this is a real, internal
			// problem.
			glog.Error(errors.Wrap(err, "error unmarshaling request body"))
			b.WriteAPIResponse(
				w,
				http.StatusInternalServerError,
				map[string]string{"message": "internal server error"},
			)
			return false
		}
	}
	return true
}

// ServeRequest validates the request body if a schema is supplied, runs the
// endpoint logic, and maps any error it returns onto the right status code.
func (b *BaseEndpoints) ServeRequest(req InboundRequest) {
	if req.ReqBodySchemaLoader != nil || req.ReqBodyObj != nil {
		if !b.readAndValidateRequestBody(
			req.W,
			req.R,
			req.ReqBodySchemaLoader,
			req.ReqBodyObj,
		) {
			return
		}
	}
	respBodyObj, err := req.EndpointLogic()
	if err != nil {
		switch e := errors.Cause(err).(type) {
		case *ErrAuthentication:
			b.WriteAPIResponse(req.W, http.StatusUnauthorized, e)
		case *ErrBadRequest:
			b.WriteAPIResponse(req.W, http.StatusBadRequest, e)
		case *ErrNotFound:
			b.WriteAPIResponse(req.W, http.StatusNotFound, e)
		case *ErrConflict:
			b.WriteAPIResponse(req.W, http.StatusConflict, e)
		default:
			glog.Error(err)
			b.WriteAPIResponse(
				req.W,
				http.StatusInternalServerError,
				map[string]string{"message": "internal server error"},
			)
		}
		return
	}
	b.WriteAPIResponse(req.W, req.SuccessCode, respBodyObj)
}

// WriteAPIResponse writes the given status code and, when response is
// non-nil, its JSON serialization.
func (b *BaseEndpoints) WriteAPIResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if response == nil {
		return
	}
	responseBody, ok := response.([]byte)
	if !ok {
		var err error
		if responseBody, err = json.Marshal(response); err != nil {
			glog.Error(errors.Wrap(err, "error marshaling response body"))
		}
	}
	if _, err := w.Write(responseBody); err != nil {
		glog.Error(errors.Wrap(err, "error writing response body"))
	}
}
