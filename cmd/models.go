package cmd

// ResolverParams is one row of the details output.
type ResolverParams struct {
	Resolver string `json:"resolver"`
	Params   any    `json:"params"`
}

type ResolverInfo struct {
	Name      string   `json:"name"`
	Alias     string   `json:"alias,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
}

type ParamInfo struct {
	Resolver string `json:"resolver"`
	Path     string `json:"path"`
	Name     string `json:"name"`
	Value    any    `json:"value"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type ParseError struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

type CheckResult struct {
	Valid  bool         `json:"valid"`
	Mode   string       `json:"mode,omitempty"`
	Errors []ParseError `json:"errors,omitempty"`
}
