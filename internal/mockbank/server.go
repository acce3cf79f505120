package mockbank

import (
	"fmt"
	"net/http"
	"os"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server is an interface for the component that responds to HTTP API requests
type Server interface {
	// ListenAndServe causes the server to start serving HTTP requests. It
	// will block until an error occurs and will return that error.
	ListenAndServe() error
}

type server struct {
	*BaseEndpoints // The server itself exposes health check endpoints
	config         Config
	endpoints      []Endpoints
	handler        http.Handler
}

// NewServer returns a mock bank API server. All API endpoints are registered
// under the /api/v1 base path.
func NewServer(
	config Config,
	baseEndpoints *BaseEndpoints,
	endpoints []Endpoints,
) Server {
	router := mux.NewRouter()
	router.StrictSlash(true)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	for _, eps := range endpoints {
		eps.Register(apiRouter)
	}

	s := &server{
		BaseEndpoints: baseEndpoints,
		config:        config,
		endpoints:     endpoints,
		handler: cors.New(
			cors.Options{
				AllowedMethods: []string{"DELETE", "GET", "POST", "PUT"},
			},
		).Handler(router),
	}

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	return s
}

func (s *server) ListenAndServe() error {
	address := fmt.Sprintf(":%d", s.config.Port())
	if s.config.TLSEnabled() &&
		fileExists(s.config.TLSCertPath()) &&
		fileExists(s.config.TLSKeyPath()) {
		glog.Infof(
			"API server is listening with TLS enabled on 0.0.0.0:%d",
			s.config.Port(),
		)
		return http.ListenAndServeTLS(
			address,
			s.config.TLSCertPath(),
			s.config.TLSKeyPath(),
			s.handler,
		)
	}
	glog.Infof(
		"API server is listening without TLS on 0.0.0.0:%d",
		s.config.Port(),
	)
	return http.ListenAndServe(
		address,
		h2c.NewHandler(s.handler, &http2.Server{}),
	)
}

func (s *server) checkHealth(
	w http.ResponseWriter,
	r *http.Request,
) {
	s.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return struct{}{}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
