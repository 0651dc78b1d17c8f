package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/internal/config"
	"github.com/Faultbox/octoland/internal/export"
	"github.com/Faultbox/octoland/internal/surfaces"
)

// AnalyzeRequest is the body of POST /v1/analyze. Omitted resolutions and
// plane fall back to the server's analysis defaults.
type AnalyzeRequest struct {
	Plane       *config.PlaneConfig `json:"plane"`
	Surface     surfaces.Spec       `json:"surface"`
	UResolution *float64            `json:"u_resolution"`
	VResolution *float64            `json:"v_resolution"`
	Series      bool                `json:"series"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	if s.cfg.MaxBodyMB > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.cfg.MaxBodyMB)<<20)
	}
	body, err := c.GetRawData()
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Request body could not be read.", err)
		return
	}

	var req AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.fail(c, http.StatusBadRequest, "Request body is not valid JSON.", err)
		return
	}

	surf, err := surfaces.Build(req.Surface)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Surface could not be built.", err)
		return
	}

	plane := s.defaults.Plane
	if req.Plane != nil {
		if req.Plane.Normal == [3]float64{} {
			s.fail(c, http.StatusBadRequest, "Plane normal must not be zero.", nil)
			return
		}
		plane = *req.Plane
	}
	uRes, vRes := s.defaults.UResolution, s.defaults.VResolution
	if req.UResolution != nil {
		uRes = *req.UResolution
	}
	if req.VResolution != nil {
		vRes = *req.VResolution
	}

	res, err := s.analyzer.Analyze(plane.Plane(), surf, uRes, vRes)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, analysis.Diagnostic(err), err)
		return
	}

	data, err := json.Marshal(export.NewSummary(res, req.Series))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Result could not be encoded.", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) fail(c *gin.Context, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg, RequestID: c.GetString("request_id")}
	if err != nil {
		resp.Detail = errors.Cause(err).Error()
		s.log.Warn("analyze failed",
			zap.String("request_id", resp.RequestID),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, resp)
}
