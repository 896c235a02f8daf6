package demoserver

import (
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// DemoServer serves fixture pages that behave like tracker-laden sites:
// they set a mix of benign and tracky cookies and fire beacon requests with
// tracker-shaped URLs. Point the scanner at it to see every heuristic fire.
type DemoServer struct {
	cfg Config
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config) *DemoServer {
	return &DemoServer{cfg: cfg}
}

// Start starts the demo server.
func (s *DemoServer) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.trackingPageHandler)
	mux.HandleFunc("/clean", s.cleanPageHandler)
	mux.HandleFunc("/track/pixel.gif", s.pixelHandler)
	mux.HandleFunc("/analytics/collect", s.collectHandler)

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo server starting on http://localhost%s\n", addr)
	fmt.Printf("Tracker-laden page at /, clean page at /clean\n")
	return http.ListenAndServe(addr, mux)
}

var trackingPage = template.Must(template.New("tracking").Parse(`<!DOCTYPE html>
<html>
<head><title>Demo shop</title></head>
<body>
<h1>Demo shop</h1>
<p>This page sets tracking cookies and fires beacon requests.</p>
<img src="/track/pixel.gif" width="1" height="1" alt="">
<script>
  document.cookie = "_utm_campaign=spring-sale; path=/";
  fetch("/analytics/collect?v=1&cid={{.ClientID}}");
</script>
</body>
</html>`))

// trackingPageHandler sets one benign and several tracky cookies, then
// renders a page whose scripts fire tracker-shaped requests.
func (s *DemoServer) trackingPageHandler(w http.ResponseWriter, r *http.Request) {
	expiry := time.Now().Add(365 * 24 * time.Hour)

	http.SetCookie(w, &http.Cookie{
		Name: "preferences", Value: "theme=light", Path: "/",
	})
	http.SetCookie(w, &http.Cookie{
		Name: "tracking_id", Value: "dXNlci0xMjM0NTY3ODkwLWFiY2RlZg", Path: "/",
		Expires: expiry, HttpOnly: false,
	})
	http.SetCookie(w, &http.Cookie{
		Name: "_ga_demo", Value: "GA1.1.123456789.987654321", Path: "/",
		Expires: expiry,
	})
	http.SetCookie(w, &http.Cookie{
		Name: "session_user_id", Value: "abc123", Path: "/", HttpOnly: true,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = trackingPage.Execute(w, map[string]string{"ClientID": "demo-client"})
}

// cleanPageHandler serves a page with one plain session cookie and no
// tracker traffic, as the negative fixture.
func (s *DemoServer) cleanPageHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name: "sid", Value: "ok", Path: "/", HttpOnly: true,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!DOCTYPE html><html><head><title>Clean page</title></head><body><p>Nothing to see here.</p></body></html>`)
}

// pixelHandler answers the 1x1 beacon image.
func (s *DemoServer) pixelHandler(w http.ResponseWriter, r *http.Request) {
	// Smallest valid GIF
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	w.Header().Set("Content-Type", "image/gif")
	_, _ = w.Write(gif)
}

// collectHandler answers the analytics beacon.
func (s *DemoServer) collectHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
