package services

import (
	"context"
	"log"
	"os/exec"
	"time"

	"github.com/yusufpapurcu/wmi"

	"github.com/feltlab/residue/internal/procs"
)

// stopTimeout bounds one `sc stop` invocation. The SCM can take a while to
// acknowledge a stop, but a hung service must not hang the whole cleanup.
const stopTimeout = 10 * time.Second

// win32Service mirrors the WMI Win32_Service fields we query.
type win32Service struct {
	Name        string
	DisplayName string
	State       string
}

// StopResult records one service stop attempt.
type StopResult struct {
	Name    string
	Stopped bool
	Err     error
}

// StopMatching queries the service control manager for services whose name or
// display name contains pattern and asks each running one to stop. Stopping a
// service first keeps the SCM from restarting processes the terminator is
// about to kill. Best effort throughout: failures are recorded, never fatal.
func StopMatching(pattern string, dryRun bool) []StopResult {
	if pattern == "" {
		return nil
	}

	var svcs []win32Service
	if err := wmi.Query("SELECT Name, DisplayName, State FROM Win32_Service", &svcs); err != nil {
		log.Printf("services: wmi query: %v", err)
		return nil
	}

	var results []StopResult
	for _, svc := range svcs {
		if !procs.Matches(svc.Name, pattern) && !procs.Matches(svc.DisplayName, pattern) {
			continue
		}
		if svc.State != "Running" && svc.State != "Start Pending" {
			continue
		}

		res := StopResult{Name: svc.Name}
		if dryRun {
			results = append(results, res)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		err := exec.CommandContext(ctx, "sc", "stop", svc.Name).Run()
		cancel()
		if err != nil {
			log.Printf("services: stop %s: %v", svc.Name, err)
			res.Err = err
		} else {
			res.Stopped = true
		}
		results = append(results, res)
	}

	return results
}
