package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"packbill-backoffice/internal/client"
	"packbill-backoffice/internal/client/notify"
	"packbill-backoffice/internal/pkg/timeseries"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	baseURL := flag.String("api", envOr("PACKBILL_API_URL", "http://localhost:8000/api"), "API base URL")
	username := flag.String("user", os.Getenv("PACKBILL_USERNAME"), "username (omit to reuse saved session)")
	password := flag.String("pass", os.Getenv("PACKBILL_PASSWORD"), "password")
	granularity := flag.String("granularity", "monthly", "chart granularity: daily, weekly, monthly or yearly")
	interval := flag.Duration("interval", client.DefaultPollInterval, "refresh interval")
	flag.Parse()

	storage, err := openStorage()
	if err != nil {
		log.Fatalf("❌ Failed to open session store: %v", err)
	}

	session := client.NewSession(*baseURL, storage)
	session.OnSessionExpired = func() {
		log.Println("🛑 Session expired, please log in again")
		os.Exit(1)
	}

	ctx := context.Background()

	// Log in if credentials were given, otherwise rely on the
	// rehydrated session
	if *username != "" {
		if err := session.Login(ctx, *username, *password); err != nil {
			log.Fatalf("❌ Login failed: %v", err)
		}
	}
	if !session.IsLoggedIn() {
		log.Fatal("❌ Not logged in: pass -user and -pass")
	}

	user := session.CurrentUser()
	log.Printf("✅ Logged in as %s (%s)", user.Username, user.UserType)

	if !session.ShortcutTipSeen() {
		fmt.Println("Tip: press Ctrl+C to exit; the session is saved for next time.")
		session.MarkShortcutTipSeen()
	}

	bus := notify.NewBus()
	bus.OnChange(func(active []notify.Notification) {
		for _, n := range active {
			fmt.Printf("[%s] %s\n", strings.ToUpper(string(n.Kind)), n.Message)
		}
	})

	dashboard := client.NewDashboard(session, bus)
	dashboard.SetGranularity(timeseries.Granularity(*granularity))

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		snapshot, err := dashboard.Refresh(ctx)
		if err != nil {
			return // Error already reported through the bus
		}
		render(snapshot, session.IsAdmin())
	}

	// First fetch is ours; the poller handles subsequent ticks
	refresh()

	poller := client.NewPoller(*interval, refresh)
	poller.Start()
	defer poller.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("👋 Bye")
}

func render(s *client.Snapshot, isAdmin bool) {
	fmt.Println()
	fmt.Println("=== PackBill Dashboard ===")
	fmt.Printf("Revenue:   %s\n", timeseries.FormatAmount(s.TotalRevenue))
	fmt.Printf("Customers: %d active / %d total\n", s.ActiveCustomers, s.TotalCustomers)
	if isAdmin {
		fmt.Printf("Staff:     %d active / %d inactive\n", s.ActiveUsers, s.InactiveUsers)
	}

	fmt.Println()
	for i, label := range s.Series.Labels {
		fmt.Printf("%-8s %s\n", label, timeseries.FormatAmount(s.Series.Totals[i]))
	}

	if len(s.RecentPayments) > 0 {
		fmt.Println()
		fmt.Println("Recent payments:")
		for _, p := range s.RecentPayments {
			name := "unknown"
			if p.Customer != nil {
				name = p.Customer.Name
			}
			fmt.Printf("  %s  %-20s %s\n", p.Date.Format("2006-01-02"), name, timeseries.FormatAmount(p.Amount))
		}
	}

	if isAdmin && len(s.RecentLogs) > 0 {
		fmt.Println()
		fmt.Println("Recent activity:")
		for _, entry := range s.RecentLogs {
			fmt.Printf("  %s  %-16s %s\n", entry.CreatedAt.Format("15:04"), entry.ActionDisplay, entry.Description)
		}
	}
}

func openStorage() (*client.FileStorage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return client.NewFileStorage(filepath.Join(home, ".packbill", "session.json"))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
