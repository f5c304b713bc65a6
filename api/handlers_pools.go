package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListPools(c *gin.Context) {
	pools := s.keeper.GetAllPools()
	out := make([]PoolResponse, 0, len(pools))
	for _, pool := range pools {
		out = append(out, newPoolResponse(pool))
	}
	c.JSON(http.StatusOK, gin.H{"pools": out})
}

func (s *Server) handleGetPool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pool id", Details: err.Error()})
		return
	}
	pool, err := s.keeper.GetPool(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPoolResponse(pool))
}

func (s *Server) handleGetReserves(c *gin.Context) {
	tokenA := c.Query("token_a")
	tokenB := c.Query("token_b")
	if tokenA == "" || tokenB == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token_a and token_b are required"})
		return
	}

	reserveA, reserveB, err := s.keeper.GetReserves(tokenA, tokenB)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_a":   tokenA,
		"token_b":   tokenB,
		"reserve_a": reserveA.String(),
		"reserve_b": reserveB.String(),
	})
}

// handleQuote previews a swap without executing it: the get_amount_out query.
func (s *Server) handleQuote(c *gin.Context) {
	tokenIn := c.Query("token_in")
	tokenOut := c.Query("token_out")
	amountIn, ok := parseAmount(c.Query("amount_in"))
	if tokenIn == "" || tokenOut == "" || !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token_in, token_out and a numeric amount_in are required"})
		return
	}

	amountOut, err := s.keeper.SimulateSwap(tokenIn, tokenOut, amountIn)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_in":   tokenIn,
		"token_out":  tokenOut,
		"amount_in":  amountIn.String(),
		"amount_out": amountOut.String(),
	})
}

func (s *Server) handleSpotPrice(c *gin.Context) {
	tokenIn := c.Query("token_in")
	tokenOut := c.Query("token_out")
	if tokenIn == "" || tokenOut == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token_in and token_out are required"})
		return
	}

	price, err := s.keeper.GetSpotPrice(tokenIn, tokenOut)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_in":  tokenIn,
		"token_out": tokenOut,
		"price":     price.String(),
	})
}

func (s *Server) handleGetPosition(c *gin.Context) {
	holder := c.Param("holder")
	id, err := strconv.ParseUint(c.Query("pool_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "numeric pool_id query parameter is required"})
		return
	}

	shares, err := s.keeper.GetLiquidity(id, holder)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pool_id": id,
		"holder":  holder,
		"shares":  shares.String(),
	})
}
