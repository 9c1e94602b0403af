package httpapi

import "github.com/gin-gonic/gin"

type routePayload struct {
	Route string `json:"route"`
}

func (s *Server) currentRoute(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	route, err := s.engine.CurrentRoute(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, route)
}

func (s *Server) navigate(c *gin.Context) {
	var payload routePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	route, err := s.engine.Navigate(ctx, payload.Route)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, route)
}
