package httpx

import (
	"fmt"
	"html"
	"net/http"
)

// writeErrorPage renders a minimal HTML error page for browser-negotiated
// requests. API clients never see this; they get the JSON failure envelope.
func writeErrorPage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%d %s</title></head>
<body>
<h1>%d %s</h1>
<p>%s</p>
</body>
</html>
`, code, http.StatusText(code), code, http.StatusText(code), html.EscapeString(message))
}
