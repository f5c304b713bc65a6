package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aquifer-dex/aquifer/ledger/memledger"
	"github.com/aquifer-dex/aquifer/x/amm/keeper"
	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// quoteCmd computes a swap output offline from explicit reserves, without a
// running server. Useful for sanity-checking fee arithmetic.
func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote <amount-in> <reserve-in> <reserve-out>",
		Short: "Compute the output of a swap against given reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, ok := math.NewIntFromString(args[0])
			if !ok {
				return fmt.Errorf("invalid amount-in %q", args[0])
			}
			reserveIn, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid reserve-in %q", args[1])
			}
			reserveOut, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid reserve-out %q", args[2])
			}

			params := types.DefaultParams()
			params.FeeNumerator = math.NewInt(viper.GetInt64("fee-numerator"))
			params.FeeDenominator = math.NewInt(viper.GetInt64("fee-denominator"))
			if err := params.Validate(); err != nil {
				return err
			}

			k, err := keeper.NewKeeper(memledger.New(), params, log.NewNopLogger())
			if err != nil {
				return err
			}
			out, err := k.CalculateSwapOutput(amountIn, reserveIn, reserveOut)
			if err != nil {
				return err
			}
			cmd.Printf("%s\n", out)
			return nil
		},
	}

	cmd.Flags().Int64("fee-numerator", 997, "swap fee numerator")
	cmd.Flags().Int64("fee-denominator", 1000, "swap fee denominator")
	return cmd
}
