package enforce

import (
	"crypto/tls"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPPool is a round-robin set of warmed fasthttp clients for the
// latency-sensitive REST calls (message delete, member timeout).
type HTTPPool struct {
	clients []*fasthttp.Client
	size    uint32
	index   uint32
}

func NewHTTPPool(size int) *HTTPPool {
	if size < 1 {
		size = 1
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(64),
	}

	clients := make([]*fasthttp.Client, size)
	for i := range clients {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:     256,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         3 * time.Second,
			WriteTimeout:        3 * time.Second,
			TLSConfig:           tlsConfig,
		}
	}

	return &HTTPPool{
		clients: clients,
		size:    uint32(size),
	}
}

func (hp *HTTPPool) GetClient() *fasthttp.Client {
	i := atomic.AddUint32(&hp.index, 1)
	return hp.clients[i%hp.size]
}

// Warmup primes TLS sessions against the API host so the first enforcement
// call does not pay the handshake.
func (hp *HTTPPool) Warmup(baseURL string) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + "/gateway")
	req.Header.SetMethod(fasthttp.MethodGet)

	for _, client := range hp.clients {
		_ = client.DoTimeout(req, resp, 2*time.Second)
	}
}
