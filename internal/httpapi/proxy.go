package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/session"
	"timesheet-web/internal/uierror"
	"timesheet-web/pkg/logger"
)

// Proxy forwards /api/* to the backend, turning the token cookie into a
// bearer header.
type Proxy struct {
	upstream *url.URL
	proxy    *httputil.ReverseProxy
}

func NewProxy(upstreamURL string, timeout time.Duration) (*Proxy, error) {
	target, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.Transport = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: timeout,
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.From(r.Context()).Warn("backend proxy failed", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		body, _ := json.Marshal(gin.H{"error": uierror.From(err)})
		_, _ = w.Write(body)
	}

	return &Proxy{upstream: target, proxy: proxy}, nil
}

// Handle must be mounted on a route with a *path parameter.
func (p *Proxy) Handle(c *gin.Context) {
	if tok := session.FromGin(c).Token; tok != "" {
		c.Request.Header.Set("Authorization", "Bearer "+tok)
	}
	// The token cookie never leaves this process.
	c.Request.Header.Del("Cookie")

	// Rebuild from the escaped path so encoded segments such as %2F survive.
	mount := strings.TrimSuffix(c.FullPath(), "/*path")
	rawPath := strings.TrimPrefix(c.Request.URL.EscapedPath(), mount)
	path, err := url.PathUnescape(rawPath)
	if err != nil {
		path, rawPath = c.Param("path"), ""
	}
	c.Request.URL.Path = path
	c.Request.URL.RawPath = ""
	if rawPath != path {
		c.Request.URL.RawPath = rawPath
	}

	p.proxy.ServeHTTP(c.Writer, c.Request)
}
