package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

func (s *Server) handleSwap(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	amountIn, okIn := parseAmount(req.AmountIn)
	minOut, okMin := parseAmount(req.MinAmountOut)
	if !okIn || !okMin {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amounts must be decimal integers"})
		return
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = req.Trader
	}

	msg := types.NewMsgSwapExactIn(req.Trader, amountIn, minOut, req.Path, recipient, req.Deadline)

	resp, err := s.msgServer.SwapExactIn(c.Request.Context(), msg)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount_out": resp.AmountOut.String(),
	})
}
