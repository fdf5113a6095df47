package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "carbarn/internal/cli"
	"carbarn/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL
	if st := cl.LoadState(); st.APIBaseURL != "" {
		apiBase = st.APIBaseURL
	}

	root := &cobra.Command{
		Use:          "crb",
		Short:        "Car Barn CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newAccountCmd(&apiBase),
		newProfileCmd(&apiBase),
		newBackgroundCmd(&apiBase),
		newMarketCmd(&apiBase),
		newGarageCmd(&apiBase),
		newCarCmd(&apiBase),
		newPartCmd(&apiBase),
		newWarehouseCmd(&apiBase),
		newTradesCmd(&apiBase),
		newConfigCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newAccountCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect or manage your save",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the raw account record",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).Account(ctx)
				if err != nil {
					return err
				}
				renderAccount(a)
				return nil
			},
		},
		&cobra.Command{
			Use:   "new",
			Short: "Create the starter save if none exists",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).EnsureAccount(ctx)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Account ready. Balance %s.", formatPrice(a.Balance)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Wipe all progress and start over",
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := promptConfirm("Reset the save and lose all progress?")
				if err != nil {
					return err
				}
				if !ok {
					printWarn("Reset cancelled.")
					return nil
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).ResetAccount(ctx)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Fresh start. Balance %s.", formatPrice(a.Balance)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Delete the save entirely",
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := promptConfirm("Delete the save entirely?")
				if err != nil {
					return err
				}
				if !ok {
					printWarn("Delete cancelled.")
					return nil
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				if err := newClient(apiBase).DeleteAccount(ctx); err != nil {
					return err
				}
				printSuccess("Save deleted.")
				return nil
			},
		},
	)
	return cmd
}

func newProfileCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Update your display name and picture",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptOptional("Display name (blank to keep)")
			if err != nil {
				return err
			}
			image, err := promptOptional("Profile image URL (blank to keep)")
			if err != nil {
				return err
			}
			var namePtr, imagePtr *string
			if name != "" {
				namePtr = &name
			}
			if image != "" {
				imagePtr = &image
			}
			if namePtr == nil && imagePtr == nil {
				printWarn("Nothing to change.")
				return nil
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			a, err := newClient(apiBase).UpdateProfile(ctx, namePtr, imagePtr)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Profile saved for %s.", displayName(a.UserName)))
			return nil
		},
	}
}

func newBackgroundCmd(apiBase *string) *cobra.Command {
	var preset string
	var image string
	cmd := &cobra.Command{
		Use:   "background",
		Short: "Pick a background preset or custom image",
		RunE: func(cmd *cobra.Command, args []string) error {
			var presetPtr, imagePtr *string
			if cmd.Flags().Changed("preset") {
				presetPtr = &preset
			}
			if cmd.Flags().Changed("image") {
				imagePtr = &image
			}
			if presetPtr == nil && imagePtr == nil {
				return fmt.Errorf("pass --preset or --image")
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			a, err := newClient(apiBase).SetBackground(ctx, presetPtr, imagePtr)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Background set to %s.", a.Background))
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "preset name, e.g. default")
	cmd.Flags().StringVar(&image, "image", "", "custom image URL (empty clears)")
	return cmd
}

func newMarketCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Browse what is for sale",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "cars",
			Short: "List every car on the market",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				cars, err := newClient(apiBase).CatalogCars(ctx)
				if err != nil {
					return err
				}
				renderCars(cars)
				return nil
			},
		},
		&cobra.Command{
			Use:   "warehouses",
			Short: "List every warehouse on the market",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				warehouses, err := newClient(apiBase).CatalogWarehouses(ctx)
				if err != nil {
					return err
				}
				renderWarehouses(warehouses)
				return nil
			},
		},
	)
	return cmd
}

func newGarageCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "garage",
		Short: "Show your cars, warehouses, and parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			view, err := newClient(apiBase).Garage(ctx)
			if err != nil {
				return err
			}
			renderGarage(view)
			return nil
		},
	}
}

func newCarCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "car",
		Short: "Buy, fix, salvage, or sell a car",
	}

	var warehouseID int
	buy := &cobra.Command{
		Use:   "buy <id>",
		Short: "Buy a car off the market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			a, err := newClient(apiBase).BuyCar(ctx, carID, warehouseID)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Car %d bought. Balance %s.", carID, formatPrice(a.Balance)))
			return nil
		},
	}
	buy.Flags().IntVar(&warehouseID, "warehouse", 0, "warehouse to store the car in (default: first with space)")

	cmd.AddCommand(
		buy,
		&cobra.Command{
			Use:   "fix <id>",
			Short: "Repair a car up to excellent",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				carID, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).FixCar(ctx, carID)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Car %d fixed. Balance %s.", carID, formatPrice(a.Balance)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "salvage <id>",
			Short: "Scrap a car into a sellable part",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				carID, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				res, err := newClient(apiBase).SalvageCar(ctx, carID)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Car %d salvaged into part %s worth %s.",
					carID, res.Part.ID, formatPrice(res.Part.SellValue)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "sell <id>",
			Short: "Sell a car at its display price",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				carID, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).SellCar(ctx, carID)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Car %d sold. Balance %s.", carID, formatPrice(a.Balance)))
				return nil
			},
		},
	)
	return cmd
}

func newPartCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "part",
		Short: "Sell salvaged parts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sell <id>",
		Short: "Sell a part at its salvage value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partID := strings.TrimSpace(args[0])
			if partID == "" {
				return fmt.Errorf("part id required")
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			a, err := newClient(apiBase).SellPart(ctx, partID)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Part sold. Balance %s.", formatPrice(a.Balance)))
			return nil
		},
	})
	return cmd
}

func newWarehouseCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Buy or liquidate warehouses",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "buy <id>",
			Short: "Buy a warehouse",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).BuyWarehouse(ctx, id)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Warehouse %d bought. Balance %s.", id, formatPrice(a.Balance)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "sell <id>",
			Short: "Sell a warehouse and everything in it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ok, err := promptConfirm("Selling liquidates every car and part stored there. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					printWarn("Sale cancelled.")
					return nil
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				res, err := newClient(apiBase).SellWarehouse(ctx, id)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Warehouse %d sold for %s. Balance %s.",
					id, formatPrice(res.Payout), formatPrice(res.Account.Balance)))
				return nil
			},
		},
	)
	return cmd
}

func newTradesCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Review and act on trade offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			offers, err := newClient(apiBase).Offers(ctx)
			if err != nil {
				return err
			}
			renderOffers(offers)
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "accept <offer-id>",
			Short: "Accept a trade offer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				a, err := newClient(apiBase).AcceptOffer(ctx, strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Trade done. Balance %s.", formatPrice(a.Balance)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "decline <offer-id>",
			Short: "Decline a trade offer for this session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				if err := newClient(apiBase).DeclineOffer(ctx, strings.TrimSpace(args[0])); err != nil {
					return err
				}
				printSuccess("Offer declined.")
				return nil
			},
		},
	)
	return cmd
}

func newConfigCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Local client settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-api <url>",
			Short: "Point the client at a different server",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				url := strings.TrimRight(strings.TrimSpace(args[0]), "/")
				if url == "" {
					return fmt.Errorf("url required")
				}
				if err := cl.SaveState(cl.State{APIBaseURL: url}); err != nil {
					return err
				}
				*apiBase = url
				printSuccess("API base saved.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget local client settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := cl.ClearState(); err != nil {
					return err
				}
				printSuccess("Settings cleared.")
				return nil
			},
		},
	)
	return cmd
}
