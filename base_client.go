package lumen

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lumabank/lumen/session"
)

type baseClient struct {
	apiAddress string
	sessions   *session.Manager
	httpClient *http.Client
}

func newBaseClient(config ClientConfig, sessions *session.Manager) *baseClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = session.DefaultTimeout
	}
	return &baseClient{
		apiAddress: strings.TrimSuffix(config.APIAddress, "/"),
		sessions:   sessions,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: config.AllowInsecure,
				},
			},
		},
	}
}

func (b *baseClient) executeAPIRequest(
	ctx context.Context,
	apiReq apiRequest,
) error {
	resp, err := b.submitAPIRequest(ctx, apiReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if apiReq.respObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return newClientError(
				ErrorKindTransport,
				"error reading response body",
				err,
			)
		}
		if err := json.Unmarshal(respBodyBytes, apiReq.respObj); err != nil {
			return newClientError(
				ErrorKindMalformedResponse,
				"error unmarshaling response body",
				err,
			)
		}
	}
	return nil
}

func (b *baseClient) submitAPIRequest(
	ctx context.Context,
	apiReq apiRequest,
) (*http.Response, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if apiReq.authenticate {
		// A session failure is a hard stop: the request is never sent
		// without usable credentials.
		authHeaders, err := b.sessions.AuthenticatedHeaders(ctx)
		if err != nil {
			return nil, newClientErrorFromSession(
				fmt.Sprintf(
					"authentication failed before request %s %s",
					apiReq.method,
					apiReq.path,
				),
				err,
			)
		}
		for k, v := range authHeaders {
			headers[k] = v
		}
	}
	for k, v := range apiReq.headers {
		headers[k] = v
	}

	var reqBodyReader io.Reader
	if apiReq.reqBodyObj != nil {
		switch rb := apiReq.reqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(apiReq.reqBodyObj)
			if err != nil {
				return nil, newClientError(
					ErrorKindConfiguration,
					"error marshaling request body",
					err,
				)
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		apiReq.method,
		fmt.Sprintf("%s/%s", b.apiAddress, apiReq.path),
		reqBodyReader,
	)
	if err != nil {
		return nil, newClientError(
			ErrorKindConfiguration,
			fmt.Sprintf(
				"error creating request %s %s",
				apiReq.method,
				apiReq.path,
			),
			err,
		)
	}
	if len(apiReq.queryParams) > 0 {
		q := req.URL.Query()
		for k, v := range apiReq.queryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, newClientError(
			ErrorKindTransport,
			fmt.Sprintf(
				"API request failed for %s %s",
				apiReq.method,
				apiReq.path,
			),
			err,
		)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close() // nolint: errcheck
		return nil, newClientError(
			ErrorKindProtocol,
			fmt.Sprintf(
				"received %d from %s %s",
				resp.StatusCode,
				apiReq.method,
				apiReq.path,
			),
			nil,
		)
	}
	if apiReq.successCode != 0 && resp.StatusCode != apiReq.successCode {
		resp.Body.Close() // nolint: errcheck
		return nil, newClientError(
			ErrorKindProtocol,
			fmt.Sprintf(
				"request to %s returned status %d, but expected %d",
				apiReq.path,
				resp.StatusCode,
				apiReq.successCode,
			),
			nil,
		)
	}
	return resp, nil
}
