package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"conferencerent/config"
	"conferencerent/models"
	"conferencerent/services/client"
	"conferencerent/utils"

	"go.uber.org/zap"
)

const usage = `Usage: client [-id <clientID>] <command> [args]

Commands:
  list                                      request the building directory
  book <building> <rooms> <hours> [date]    book rooms (date YYYY-MM-DD, default tomorrow)
  confirm <building> <reservationID>        confirm a provisional hold
  cancel <building> <reservationID>         cancel a reservation
  demo <building>                           scripted book/confirm/cancel/re-book flow
`

func main() {
	config.LoadConfig()

	id := flag.String("id", config.AppConfig.ClientID, "client identity (default: generated)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := utils.ActorLogger("client", *id)
	defer logger.Sync()

	utils.InitBus()

	ctx := context.Background()
	api, err := client.NewBookingClient(ctx, *id, utils.GetBusClient(), utils.AsynqRedisOpt(),
		config.AppConfig.ReplyTimeout, logger)
	if err != nil {
		logger.Fatal("client setup failed", zap.Error(err))
	}
	defer api.Close()

	if err := run(ctx, api, args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api client.BookingAPI, args []string) error {
	switch args[0] {
	case "list":
		directory, err := api.RequestBuildingList(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Buildings:", directory)
		return nil

	case "book":
		if len(args) < 4 {
			return fmt.Errorf("usage: book <building> <rooms> <hours> [date]")
		}
		rooms, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("rooms: %w", err)
		}
		hours, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("hours: %w", err)
		}
		date := tomorrow()
		if len(args) >= 5 {
			date = args[4]
		}
		out, err := api.BookRoom(ctx, args[1], rooms, date, hours)
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil

	case "confirm":
		if len(args) < 3 {
			return fmt.Errorf("usage: confirm <building> <reservationID>")
		}
		out, err := api.ConfirmReservation(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil

	case "cancel":
		if len(args) < 3 {
			return fmt.Errorf("usage: cancel <building> <reservationID>")
		}
		out, err := api.CancelReservation(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil

	case "demo":
		if len(args) < 2 {
			return fmt.Errorf("usage: demo <building>")
		}
		return runDemo(ctx, api, args[1])

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// runDemo walks the whole reservation lifecycle against one building:
// directory, hold, confirm, cancel, and a re-book proving the canceled
// capacity was released.
func runDemo(ctx context.Context, api client.BookingAPI, building string) error {
	date := tomorrow()

	directory, err := api.RequestBuildingList(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Buildings:", directory)

	out, err := api.BookRoom(ctx, building, 1, date, 2)
	if err != nil {
		return err
	}
	printOutcome(out)
	if !out.Success {
		return fmt.Errorf("booking failed: %s", out.Message)
	}
	id := out.ReservationID

	if out, err = api.ConfirmReservation(ctx, building, id); err != nil {
		return err
	}
	printOutcome(out)

	if out, err = api.CancelReservation(ctx, building, id); err != nil {
		return err
	}
	printOutcome(out)

	if out, err = api.BookRoom(ctx, building, 1, date, 2); err != nil {
		return err
	}
	printOutcome(out)
	fmt.Println("Demo complete.")
	return nil
}

func printOutcome(out models.Outcome) {
	status := "FAILED"
	if out.Success {
		status = "OK"
	}
	if out.ReservationID != "" {
		fmt.Printf("%s: %s (reservation %s)\n", status, out.Message, out.ReservationID)
		return
	}
	fmt.Printf("%s: %s\n", status, out.Message)
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}
