package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

func (s *Server) handleAddLiquidity(c *gin.Context) {
	var req AddLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	desiredA, okA := parseAmount(req.DesiredA)
	desiredB, okB := parseAmount(req.DesiredB)
	minA, okMinA := parseAmount(req.MinA)
	minB, okMinB := parseAmount(req.MinB)
	if !okA || !okB || !okMinA || !okMinB {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amounts must be decimal integers"})
		return
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = req.Provider
	}

	msg := types.NewMsgAddLiquidity(req.Provider, req.TokenA, req.TokenB,
		desiredA, desiredB, minA, minB, recipient, req.Deadline)

	resp, err := s.msgServer.AddLiquidity(c.Request.Context(), msg)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pool_id": resp.PoolId,
		"used_a":  resp.UsedA.String(),
		"used_b":  resp.UsedB.String(),
		"shares":  resp.Shares.String(),
	})
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var req RemoveLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	shares, okShares := parseAmount(req.Shares)
	minA, okMinA := parseAmount(req.MinA)
	minB, okMinB := parseAmount(req.MinB)
	if !okShares || !okMinA || !okMinB {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amounts must be decimal integers"})
		return
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = req.Provider
	}

	msg := types.NewMsgRemoveLiquidity(req.Provider, req.TokenA, req.TokenB,
		shares, minA, minB, recipient, req.Deadline)

	resp, err := s.msgServer.RemoveLiquidity(c.Request.Context(), msg)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount_a": resp.AmountA.String(),
		"amount_b": resp.AmountB.String(),
	})
}
