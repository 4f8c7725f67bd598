package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/options"
)

var (
	greeksSpot   float64
	greeksStrike float64
	greeksRate   float64
	greeksVol    float64
	greeksDays   float64
	greeksType   string
)

var greeksCmd = &cobra.Command{
	Use:   "greeks",
	Short: "Price an option and compute its greeks",
	Long: `Computes the Black-Scholes price, delta, gamma, theta, vega and rho
for a European option.

Example:
  dashboard greeks --spot 185 --strike 190 --vol 0.28 --days 45 --type call`,
	RunE: runGreeks,
}

func init() {
	greeksCmd.Flags().Float64Var(&greeksSpot, "spot", 0, "underlying price")
	greeksCmd.Flags().Float64Var(&greeksStrike, "strike", 0, "strike price")
	greeksCmd.Flags().Float64Var(&greeksRate, "rate", 0.05, "annual risk-free rate")
	greeksCmd.Flags().Float64Var(&greeksVol, "vol", 0, "implied volatility, e.g. 0.25")
	greeksCmd.Flags().Float64Var(&greeksDays, "days", 30, "calendar days to expiry")
	greeksCmd.Flags().StringVar(&greeksType, "type", "call", "option type: call or put")
}

func runGreeks(cmd *cobra.Command, args []string) error {
	g, err := options.CalculateGreeks(model.OptionQuote{
		Spot:         greeksSpot,
		Strike:       greeksStrike,
		Rate:         greeksRate,
		Volatility:   greeksVol,
		TimeToExpiry: greeksDays / 365,
		Type:         model.OptionType(greeksType),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s @ %.2f, spot %.2f, vol %.0f%%, %g days\n\n",
		greeksType, greeksStrike, greeksSpot, greeksVol*100, greeksDays)
	fmt.Printf("price  %10.4f\n", g.Price)
	fmt.Printf("delta  %10.4f\n", g.Delta)
	fmt.Printf("gamma  %10.4f\n", g.Gamma)
	fmt.Printf("theta  %10.4f per day\n", g.Theta)
	fmt.Printf("vega   %10.4f per vol point\n", g.Vega)
	fmt.Printf("rho    %10.4f per rate point\n", g.Rho)
	return nil
}
