package app

import "net/http"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string       // data directory, e.g. $HOME/.sealbox
	ServerURL string       // relay base URL, e.g. http://127.0.0.1:3008
	HTTP      *http.Client // optional; defaults to http.DefaultClient
}
