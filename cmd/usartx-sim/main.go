// Command usartx-sim drives the USART configuration engine against the
// in-memory register simulator: list board descriptors, print divisor
// tables, or run a full initialization and dump the resulting register
// state.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/microhal/avr-usartx/avrsim"
	"github.com/microhal/avr-usartx/boards"
	"github.com/microhal/avr-usartx/usartx"
)

var (
	boardName string
	unitNum   int
	modeName  string
	baudRate  uint32
	dataBits  uint8
	parity    string
	stopBits  uint8

	rootCmd = &cobra.Command{
		Use:   "usartx-sim",
		Short: "Run the USART configuration engine against a simulated register file",
	}

	boardsCmd = &cobra.Command{
		Use:   "boards",
		Short: "List built-in board descriptors",
		Run: func(cmd *cobra.Command, args []string) {
			for _, b := range boards.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %9d Hz  %d unit(s)  chips: %s\n",
					b.Name, b.OscillatorHz, b.Units, strings.Join(b.Chips, ", "))
			}
		},
	}

	divisorCmd = &cobra.Command{
		Use:   "divisor [baud...]",
		Short: "Print the clock divisor for one or more baud rates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := boards.FindByName(boardName)
			if err != nil {
				return err
			}
			mode, err := parseMode(modeName)
			if err != nil {
				return err
			}
			for _, arg := range args {
				baud, err := strconv.ParseUint(arg, 10, 32)
				if err != nil {
					return fmt.Errorf("bad baud rate %q: %w", arg, err)
				}
				div, err := usartx.Divisor(board.OscillatorHz, uint32(baud), mode)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%8d baud: %v\n", baud, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%8d baud: divisor %4d (UBRRH=0x%02X UBRRL=0x%02X)\n",
					baud, div, byte(div>>8)&0x0F, byte(div))
			}
			return nil
		},
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize a unit on the simulator and dump its registers",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := boards.FindByName(boardName)
			if err != nil {
				return err
			}
			if unitNum < 0 || unitNum >= board.Units {
				return fmt.Errorf("board %s has %d unit(s)", board.Name, board.Units)
			}
			cfg, err := buildConfig()
			if err != nil {
				return err
			}

			sim := avrsim.NewSim()
			unit := usartx.Unit(unitNum)
			u, err := usartx.NewUSART(unit, sim, sim, usartx.WithOscillator(board.OscillatorHz))
			if err != nil {
				return err
			}
			if err := u.Initialize(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			base := unit.Base()
			fmt.Fprintf(out, "%s on %s, %s %d baud %d%s%d\n",
				unit, board.Name, cfg.Mode, cfg.BaudRate, cfg.DataSize, parityLetter(cfg.Parity), cfg.StopBits)
			for _, r := range []struct {
				name   string
				offset uint16
			}{
				{"UCSRA", usartx.RegUCSRA},
				{"UCSRB", usartx.RegUCSRB},
				{"UCSRC", usartx.RegUCSRC},
				{"UBRRL", usartx.RegUBRRL},
				{"UBRRH", usartx.RegUBRRH},
			} {
				fmt.Fprintf(out, "  %s (0x%03X) = 0x%02X\n", r.name, base+r.offset, sim.Peek(base+r.offset))
			}
			fmt.Fprintf(out, "  %d register write(s)\n", len(sim.Writes()))
			return nil
		},
	}
)

func parseMode(s string) (usartx.Mode, error) {
	switch strings.ToLower(s) {
	case "normal-async", "async":
		return usartx.ModeNormalAsync, nil
	case "double-speed-async", "double":
		return usartx.ModeDoubleSpeedAsync, nil
	case "master-sync", "master":
		return usartx.ModeMasterSync, nil
	case "slave-sync", "slave":
		return usartx.ModeSlaveSync, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func parseParity(s string) (usartx.Parity, error) {
	switch strings.ToLower(s) {
	case "none", "n":
		return usartx.ParityNone, nil
	case "even", "e":
		return usartx.ParityEven, nil
	case "odd", "o":
		return usartx.ParityOdd, nil
	}
	return 0, fmt.Errorf("unknown parity %q", s)
}

func parityLetter(p usartx.Parity) string {
	return strings.ToUpper(p.String()[:1])
}

func buildConfig() (usartx.Config, error) {
	mode, err := parseMode(modeName)
	if err != nil {
		return usartx.Config{}, err
	}
	par, err := parseParity(parity)
	if err != nil {
		return usartx.Config{}, err
	}
	return usartx.Config{
		Mode:     mode,
		BaudRate: baudRate,
		StopBits: usartx.StopBits(stopBits),
		DataSize: usartx.DataSize(dataBits),
		Parity:   par,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&boardName, "board", "b", boards.Default().Name, "board descriptor to use")
	for _, cmd := range []*cobra.Command{divisorCmd, initCmd} {
		cmd.Flags().StringVarP(&modeName, "mode", "m", "normal-async", "normal-async, double-speed-async, master-sync or slave-sync")
	}
	initCmd.Flags().IntVarP(&unitNum, "unit", "u", 0, "unit ordinal")
	initCmd.Flags().Uint32Var(&baudRate, "baud", 9600, "baud rate")
	initCmd.Flags().Uint8Var(&dataBits, "size", 8, "data bits (5..9)")
	initCmd.Flags().StringVar(&parity, "parity", "none", "none, even or odd")
	initCmd.Flags().Uint8Var(&stopBits, "stop", 1, "stop bits (1 or 2)")
	rootCmd.AddCommand(boardsCmd, divisorCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
