package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"carbarn/internal/catalog"
	"carbarn/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptOptional(label string) (string, error) {
	accent.Printf("%s: ", label)
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptConfirm(question string) (bool, error) {
	warn.Printf("%s [y/N]: ", question)
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func formatPrice(n int) string {
	raw := strconv.Itoa(n)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}
	var b strings.Builder
	for i, d := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

func formatMileage(n int) string {
	return strings.TrimPrefix(formatPrice(n), "$") + " mi"
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "player"
	}
	return name
}

func renderAccount(a game.Account) {
	accent.Printf("%s\n", displayName(a.UserName))
	printInfo(fmt.Sprintf("Balance:    %s", formatPrice(a.Balance)))
	printInfo(fmt.Sprintf("Cars:       %d", len(a.Cars)))
	printInfo(fmt.Sprintf("Warehouses: %d", len(a.WarehouseIDs)))
	printInfo(fmt.Sprintf("Parts:      %d", len(a.Parts)))
	printInfo(fmt.Sprintf("Background: %s", a.Background))
}

func renderCars(cars []catalog.Car) {
	if len(cars) == 0 {
		printWarn("No cars on the market.")
		return
	}
	accent.Printf("%-4s %-22s %-6s %-12s %-10s %-10s %s\n",
		"ID", "Car", "Year", "Mileage", "Cond", "Seller", "Price")
	for _, c := range cars {
		fmt.Printf("%-4d %-22s %-6d %-12s %-10s %-10s %s\n",
			c.ID, c.Make+" "+c.Model, c.Year, formatMileage(c.Mileage),
			c.Condition, c.Seller, formatPrice(c.Price))
	}
}

func renderWarehouses(warehouses []catalog.Warehouse) {
	if len(warehouses) == 0 {
		printWarn("No warehouses on the market.")
		return
	}
	accent.Printf("%-4s %-24s %-20s %-9s %-10s %s\n",
		"ID", "Warehouse", "Location", "Capacity", "Upkeep", "Price")
	for _, w := range warehouses {
		fmt.Printf("%-4d %-24s %-20s %-9d %-10s %s\n",
			w.ID, w.Title, w.Location, w.Capacity,
			formatPrice(w.MonthlyUpkeep), formatPrice(w.Price))
	}
}

func renderGarage(view game.GarageView) {
	accent.Printf("Balance: %s\n", formatPrice(view.Balance))

	if len(view.Warehouses) == 0 {
		printWarn("You own no warehouses.")
	}
	for _, w := range view.Warehouses {
		accent.Printf("\n%s (#%d) %s, %d slot(s) free\n",
			w.Title, w.ID, w.Location, w.Remaining)
		if len(w.Stored) == 0 {
			printInfo("  empty")
			continue
		}
		for _, c := range w.Stored {
			tag := ""
			if c.Fixed {
				tag = " (fixed)"
			}
			fmt.Printf("  #%-3d %s %s %d, %s, %s%s\n",
				c.ID, c.Make, c.Model, c.Year, c.Condition, formatPrice(c.Price), tag)
		}
	}

	if len(view.Parts) > 0 {
		accent.Println("\nParts")
		for _, p := range view.Parts {
			fmt.Printf("  %s  %s %s %d, worth %s\n",
				p.ID, p.Make, p.Model, p.Year, formatPrice(p.SellValue))
		}
	}
}

func renderOffers(offers []game.Offer) {
	if len(offers) == 0 {
		printWarn("No open trade offers.")
		return
	}
	for _, o := range offers {
		accent.Printf("%s\n", o.ID)
		printInfo(fmt.Sprintf("  From %s: %q", o.UserName, o.Message))
		printInfo(fmt.Sprintf("  They want:  %s %s (%s)",
			o.CarWanted.Make, o.CarWanted.Model, formatPrice(o.CarWanted.Price)))
		printInfo(fmt.Sprintf("  They offer: %s %s (%s)",
			o.CarOffered.Make, o.CarOffered.Model, formatPrice(o.CarOffered.Price)))
		diff := o.CarOffered.Price - o.CarWanted.Price
		switch {
		case diff > 0:
			printWarn(fmt.Sprintf("  You pay %s on top.", formatPrice(diff)))
		case diff < 0:
			printSuccess(fmt.Sprintf("  You pocket %s.", formatPrice(-diff)))
		default:
			printInfo("  Even swap.")
		}
	}
}
