package menunav

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-adminpage/pkg/menu"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Item is one navigation entry in the JSON payload.
type Item struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Icon     string `json:"icon,omitempty"`
	URL      string `json:"url"`
	Children []Item `json:"children,omitempty"`
}

type navResponse struct {
	Data []Item `json:"data"`
}

// Handler builds a net/http handler serving m with default options plus any
// overrides.
func Handler(m *menu.Menu, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(m, NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// Callers are expected to pass an Options value produced by NewOptions so
// defaults apply.
func HandlerWithOptions(m *menu.Menu, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		items := itemsFromEntries(m.Entries())

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))
		if query != "" {
			items = Search(items, query, limit, opts)
		}
		if items == nil {
			items = []Item{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(navResponse{Data: items})
	})
}

func itemsFromEntries(entries []menu.Entry) []Item {
	out := make([]Item, 0, len(entries))
	for _, entry := range entries {
		item := Item{
			Slug:  entry.Slug,
			Title: entry.Title,
			Icon:  entry.Icon,
			URL:   entry.URL,
		}
		if len(entry.Children) > 0 {
			item.Children = itemsFromEntries(entry.Children)
		}
		out = append(out, item)
	}
	return out
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
