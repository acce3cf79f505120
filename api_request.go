package lumen

type apiRequest struct {
	method       string
	path         string
	queryParams  map[string]string
	authenticate bool
	headers      map[string]string
	reqBodyObj   interface{}
	successCode  int
	respObj      interface{}
}
