package api

import (
	"net/http"

	"koistat/adapters/stats/correlation"
	"koistat/adapters/stats/fitting"
	"koistat/adapters/stats/hypothesis"
	"koistat/adapters/stats/moments"
	"koistat/domain/series"
	"koistat/domain/stats"
	"koistat/internal/report"

	"github.com/gin-gonic/gin"
)

// ZTestRequest is the body of POST /api/v1/ztest.
type ZTestRequest struct {
	Sample []float64 `json:"sample" binding:"required"`
	Mu0    *float64  `json:"mu0" binding:"required"`
	Alphas []float64 `json:"alphas"`
}

// PearsonRequest is the body of POST /api/v1/pearson.
type PearsonRequest struct {
	X     []float64 `json:"x" binding:"required"`
	Y     []float64 `json:"y" binding:"required"`
	Alpha float64   `json:"alpha"`
}

// PearsonResponse adds the significance verdict at Alpha.
type PearsonResponse struct {
	Correlation stats.CorrelationResult `json:"correlation"`
	Alpha       float64                 `json:"alpha"`
	Significant bool                    `json:"significant"`
}

// BinomialRequest is the body of POST /api/v1/binomial.
type BinomialRequest struct {
	K int     `json:"k"`
	N int     `json:"n" binding:"required"`
	P float64 `json:"p"`
}

// BinomialResponse holds P(X = k) and P(X ≥ 1).
type BinomialResponse struct {
	K           int     `json:"k"`
	N           int     `json:"n"`
	P           float64 `json:"p"`
	PMF         float64 `json:"pmf"`
	PAtLeastOne float64 `json:"p_at_least_one"`
}

// MomentsRequest is the body of POST /api/v1/moments.
type MomentsRequest struct {
	Values []float64 `json:"values" binding:"required"`
}

// MomentsResponse pairs the four moments with the descriptive summary.
type MomentsResponse struct {
	Moments stats.MomentSummary `json:"moments"`
	Summary stats.SummaryStats  `json:"summary"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"objects": s.service.Catalog().Len(),
	})
}

func (s *Server) handleReport(c *gin.Context) {
	rep, err := s.currentReport(c.Request.Context(), c.Query("refresh") == "true")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleReportHTML(c *gin.Context) {
	rep, err := s.currentReport(c.Request.Context(), c.Query("refresh") == "true")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(rep))
}

func (s *Server) handleZTest(c *gin.Context) {
	var req ZTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	sample, err := series.NewNumeric("sample", req.Sample)
	if err != nil {
		s.fail(c, err)
		return
	}
	alphas := req.Alphas
	if len(alphas) == 0 {
		alphas = s.alphas
	}
	res, err := hypothesis.Evaluate(sample, *req.Mu0, alphas...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handlePearson(c *gin.Context) {
	var req PearsonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	x, err := series.NewNumeric("x", req.X)
	if err != nil {
		s.fail(c, err)
		return
	}
	y, err := series.NewNumeric("y", req.Y)
	if err != nil {
		s.fail(c, err)
		return
	}
	res, err := correlation.Pearson(x, y)
	if err != nil {
		s.fail(c, err)
		return
	}
	alpha := req.Alpha
	if alpha == 0 {
		alpha = 0.05
	}
	c.JSON(http.StatusOK, PearsonResponse{Correlation: res, Alpha: alpha, Significant: res.Significant(alpha)})
}

func (s *Server) handleBinomial(c *gin.Context) {
	var req BinomialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	pmf, err := fitting.BinomialPMF(req.K, req.N, req.P)
	if err != nil {
		s.fail(c, err)
		return
	}
	atLeastOne, err := fitting.BinomialAtLeastOne(req.N, req.P)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, BinomialResponse{K: req.K, N: req.N, P: req.P, PMF: pmf, PAtLeastOne: atLeastOne})
}

func (s *Server) handleMoments(c *gin.Context) {
	var req MomentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	values, err := series.NewNumeric("values", req.Values)
	if err != nil {
		s.fail(c, err)
		return
	}
	summary, err := moments.Compute(values)
	if err != nil {
		s.fail(c, err)
		return
	}
	desc, err := moments.Summarize(values)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MomentsResponse{Moments: summary, Summary: desc})
}
