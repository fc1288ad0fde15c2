package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultBase = "http://localhost:9000"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	base := os.Getenv("API_BASE")
	if base == "" {
		base = defaultBase
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	// Verification
	case "submit":
		postJSON(base+"/v1/verification/submit", args)
	case "verify-blocking":
		postJSON(base+"/v1/verification/verify-blocking", args)
	case "status":
		get(base + "/v1/verification/" + mustArg(args, 0) + "/status")
	case "watch":
		watch(base, mustArg(args, 0))

	// Registry reads
	case "record":
		get(base + "/v1/accounts/" + mustArg(args, 0) + "/record")
	case "verified":
		get(base + "/v1/accounts/" + mustArg(args, 0) + "/verified")

	// KYC
	case "kyc-webhook":
		postJSON(base+"/v1/webhooks/kyc", args)

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`Usage: cli <command> [options]

Commands:
  submit           -d '{...}'     POST /v1/verification/submit
  verify-blocking  -d '{...}'     POST /v1/verification/verify-blocking
  status           <session_id>   GET  /v1/verification/:session_id/status
  watch            <session_id>   poll status every 2s until terminal
  record           <account_id>   GET  /v1/accounts/:account_id/record
  verified         <account_id>   GET  /v1/accounts/:account_id/verified
  kyc-webhook      -d '{...}'     POST /v1/webhooks/kyc

Environment:
  API_BASE   override default http://localhost:9000

`)
}

func mustArg(args []string, idx int) string {
	if len(args) <= idx {
		fmt.Fprintf(os.Stderr, "missing argument %d\n", idx+1)
		usage()
		os.Exit(1)
	}
	return args[idx]
}

// watch polls the session status until it leaves pending, for at most a
// minute. Useful while the chain worker drains the queue.
func watch(base, sessionId string) {
	url := base + "/v1/verification/" + sessionId + "/status"
	deadline := time.Now().Add(time.Minute)
	for {
		res, err := http.Get(url)
		if err != nil {
			fmt.Println("do:", err)
			os.Exit(1)
		}
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		fmt.Printf("← %d %s\n", res.StatusCode, bytes.TrimSpace(body))

		var status struct {
			State string `json:"state"`
		}
		_ = json.Unmarshal(body, &status)
		if res.StatusCode != http.StatusOK || status.State != "pending" {
			return
		}
		if time.Now().After(deadline) {
			fmt.Fprintln(os.Stderr, "gave up after one minute")
			os.Exit(1)
		}
		time.Sleep(2 * time.Second)
	}
}

func get(url string) {
	do("GET", url, nil)
}

func postJSON(url string, args []string) {
	do("POST", url, pickJSON(args))
}

func pickJSON(args []string) io.Reader {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	body := fs.String("d", "", "request JSON body")
	fs.Parse(args)
	var r io.Reader
	if *body != "" {
		r = bytes.NewBufferString(*body)
	} else {
		// read from stdin
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			r = os.Stdin
		}
	}
	return r
}

func do(method, url string, body io.Reader) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Println("req:", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("do:", err)
		os.Exit(1)
	}
	defer res.Body.Close()

	fmt.Printf("→ %s %s\n", method, url)
	fmt.Printf("← %d %s\n\n", res.StatusCode, http.StatusText(res.StatusCode))
	io.Copy(os.Stdout, res.Body)
	fmt.Println()
}
