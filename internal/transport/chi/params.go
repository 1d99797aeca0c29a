package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// searchParams are the query parameters shared by the search endpoints.
type searchParams struct {
	Q       *string
	Content *string
	Refresh *bool
	Explain *bool
}

func (p searchParams) query() string {
	if p.Q == nil {
		return ""
	}
	return *p.Q
}

func (p searchParams) content() string {
	if p.Content == nil {
		return ""
	}
	return *p.Content
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", q, &p.Q); err != nil {
		return p, fmt.Errorf("invalid format for parameter q: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "content", q, &p.Content); err != nil {
		return p, fmt.Errorf("invalid format for parameter content: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "refresh", q, &p.Refresh); err != nil {
		return p, fmt.Errorf("invalid format for parameter refresh: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "explain", q, &p.Explain); err != nil {
		return p, fmt.Errorf("invalid format for parameter explain: %w", err)
	}
	return p, nil
}

func bindAssetPath(r *http.Request) (string, error) {
	var path string
	if err := runtime.BindQueryParameter("form", true, true, "path", r.URL.Query(), &path); err != nil {
		return "", fmt.Errorf("invalid format for parameter path: %w", err)
	}
	return path, nil
}

func bindPointID(r *http.Request) (int, error) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter id: %w", err)
	}
	return id, nil
}

func bindProductName(r *http.Request) (string, error) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "name", chi.URLParam(r, "name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter name: %w", err)
	}
	return name, nil
}

// propertyParams identify a vocabulary value in query strings.
type propertyParams struct {
	Type   string
	Value  string
	Parent *string
	Force  *bool
}

func (p propertyParams) parent() string {
	if p.Parent == nil {
		return ""
	}
	return *p.Parent
}

func bindPropertyParams(r *http.Request) (propertyParams, error) {
	var p propertyParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "type", q, &p.Type); err != nil {
		return p, fmt.Errorf("invalid format for parameter type: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "value", q, &p.Value); err != nil {
		return p, fmt.Errorf("invalid format for parameter value: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "parent", q, &p.Parent); err != nil {
		return p, fmt.Errorf("invalid format for parameter parent: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "force", q, &p.Force); err != nil {
		return p, fmt.Errorf("invalid format for parameter force: %w", err)
	}
	return p, nil
}

func isSet(b *bool) bool { return b != nil && *b }
