package identity

import "net/http"

// Header carries the acting user's id. The identity provider lives outside
// this service; requests arrive already authenticated.
const Header = "X-User-ID"

// Middleware resolves the user id from the request header into the context.
// fallback stands in for the development user when the header is absent;
// with an empty fallback, requests without the header are rejected.
func Middleware(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(Header)
			if userID == "" {
				userID = fallback
			}
			if userID == "" {
				http.Error(w, "missing "+Header+" header", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// FromRequest resolves the user id for handlers mounted outside Middleware,
// such as the websocket endpoint.
func FromRequest(fallback string) func(*http.Request) string {
	return func(r *http.Request) string {
		if id := r.Header.Get(Header); id != "" {
			return id
		}
		return fallback
	}
}
