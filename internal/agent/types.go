package agent

// listAllRequest selects the listing report.
type listAllRequest struct {
	PublicOnly bool     `json:"public_only"`
	Directory  string   `json:"directory"`
	Blacklist  []string `json:"blacklist"`
}

// callGraphRequest selects the call-graph report rooted at RootFunction.
type callGraphRequest struct {
	RootFunction string   `json:"root_function" binding:"required"`
	PublicOnly   bool     `json:"public_only"`
	Directory    string   `json:"directory"`
	Blacklist    []string `json:"blacklist"`
}

// sourceRequest selects the source report for one function.
type sourceRequest struct {
	Function  string   `json:"function" binding:"required"`
	Directory string   `json:"directory"`
	Blacklist []string `json:"blacklist"`
}

// toolResponse carries a successful report.
type toolResponse struct {
	Result string `json:"result"`
}

// errorResponse carries a failed tool call.
type errorResponse struct {
	Error string `json:"error"`
}

// projectInfo describes one configured project.
type projectInfo struct {
	Name  string   `json:"name"`
	Paths []string `json:"paths"`
}

// projectsResponse lists the workspace configuration.
type projectsResponse struct {
	Primary      projectInfo   `json:"primary"`
	Dependencies []projectInfo `json:"dependencies"`
}
