// Package agent exposes the report generator as an HTTP tool-call surface
// for LLM integrations. Each request triggers a full, independent
// ingestion of the resolved roots, so requests share nothing but the
// startup configuration.
package agent

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/report"
	"github.com/rustscope/rustscope/internal/workspace"
)

// Handlers wires the tool-call endpoints to a generator and workspace
// configuration.
type Handlers struct {
	cfg *workspace.Config
	gen *report.Generator
	log *logrus.Logger
}

// NewHandlers returns handlers serving cfg through gen.
func NewHandlers(cfg *workspace.Config, gen *report.Generator, log *logrus.Logger) *Handlers {
	return &Handlers{cfg: cfg, gen: gen, log: log}
}

// Router builds the HTTP surface: one POST route per tool plus a read-only
// workspace listing.
func (h *Handlers) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/tool/list_all", h.listAll)
	r.POST("/tool/generate_call_graph", h.callGraph)
	r.POST("/tool/get_source", h.getSource)
	r.GET("/projects", h.projects)
	return r
}

func (h *Handlers) listAll(c *gin.Context) {
	var req listAllRequest
	if !h.bind(c, &req) {
		return
	}
	h.generate(c, req.Directory, req.Blacklist, model.ListAll{
		Visibility: visibility(req.PublicOnly),
	})
}

func (h *Handlers) callGraph(c *gin.Context) {
	var req callGraphRequest
	if !h.bind(c, &req) {
		return
	}
	h.generate(c, req.Directory, req.Blacklist, model.CallGraph{
		Root:       req.RootFunction,
		Visibility: visibility(req.PublicOnly),
	})
}

func (h *Handlers) getSource(c *gin.Context) {
	var req sourceRequest
	if !h.bind(c, &req) {
		return
	}
	h.generate(c, req.Directory, req.Blacklist, model.SourceOf{
		Function: req.Function,
	})
}

func (h *Handlers) projects(c *gin.Context) {
	resp := projectsResponse{
		Primary:      projectInfo{Name: h.cfg.Primary.Name, Paths: h.cfg.Primary.Paths},
		Dependencies: []projectInfo{},
	}
	for _, d := range h.cfg.Dependencies {
		resp.Dependencies = append(resp.Dependencies, projectInfo{Name: d.Name, Paths: d.Paths})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

// generate resolves the directory spec, runs the report, and writes the
// tool response. Unknown projects and generation failures both surface as
// 400s with the error in the body, so a calling model can read and react
// to them.
func (h *Handlers) generate(c *gin.Context, directory string, blacklist []string, mode model.Mode) {
	roots, err := h.cfg.Resolve(directory)
	if err != nil {
		h.log.WithFields(logrus.Fields{"path": c.FullPath(), "directory": directory}).
			WithError(err).Warn("directory resolution failed")
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.gen.Generate(roots, mode, blacklist)
	if err != nil {
		h.log.WithFields(logrus.Fields{"path": c.FullPath(), "roots": roots}).
			WithError(err).Warn("report generation failed")
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.log.WithFields(logrus.Fields{"path": c.FullPath(), "roots": roots, "bytes": len(out)}).
		Info("tool call served")
	c.JSON(http.StatusOK, toolResponse{Result: out})
}

func visibility(publicOnly bool) model.VisibilityFilter {
	if publicOnly {
		return model.PublicOnly
	}
	return model.AllItems
}
