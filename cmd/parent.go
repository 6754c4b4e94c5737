package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var parentCmd = &cobra.Command{
	Use:   "parent",
	Short: "Manage the parent PIN",
}

var parentSetPINCmd = &cobra.Command{
	Use:   "set-pin",
	Short: "Set or change the parent PIN",
	Long:  "Set a 4 to 8 digit PIN that guards the parent dashboard, the bank screen and the parent API. The PIN is read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		enabled, err := d.env.Guard.Enabled(ctx)
		if err != nil {
			return err
		}
		if enabled {
			fmt.Fprint(out, "Current PIN: ")
			if err := d.env.Guard.Check(ctx, readLine(in)); err != nil {
				return err
			}
		}

		fmt.Fprint(out, "New PIN: ")
		pin := readLine(in)
		fmt.Fprint(out, "Repeat PIN: ")
		if readLine(in) != pin {
			return fmt.Errorf("PINs do not match")
		}
		if err := d.env.Guard.SetPIN(ctx, pin); err != nil {
			return err
		}
		d.log.Info("parent PIN set")
		fmt.Fprintln(out, "PIN saved.")
		return nil
	},
}

var parentClearPINCmd = &cobra.Command{
	Use:   "clear-pin",
	Short: "Remove the parent PIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		enabled, err := d.env.Guard.Enabled(ctx)
		if err != nil {
			return err
		}
		if !enabled {
			fmt.Fprintln(out, "No PIN is set.")
			return nil
		}

		fmt.Fprint(out, "Current PIN: ")
		if err := d.env.Guard.Check(ctx, readLine(bufio.NewReader(cmd.InOrStdin()))); err != nil {
			return err
		}
		if err := d.env.Guard.ClearPIN(ctx); err != nil {
			return err
		}
		d.log.Info("parent PIN cleared")
		fmt.Fprintln(out, "PIN removed.")
		return nil
	},
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	parentCmd.AddCommand(parentSetPINCmd)
	parentCmd.AddCommand(parentClearPINCmd)
}
