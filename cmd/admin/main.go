// Command admin is an operator tool for the movies API. It registers
// accounts and grants or revokes the admin claim against a running server.
//
// Usage:
//
//	admin [-a http://127.0.0.1:8080] [-t <admin token>] <command> <email>
//
// Commands:
//
//	register     create an account (password read from the terminal)
//	makeadmin    grant isadmin=true (requires -t)
//	removeadmin  revoke isadmin=true (requires -t)
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	addr := flag.String("a", "http://127.0.0.1:8080", "server base URL")
	token := flag.String("t", "", "admin bearer token for claim commands")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: admin [-a addr] [-t token] <register|makeadmin|removeadmin> <email>")
		os.Exit(2)
	}

	command, email := args[0], args[1]

	var err error
	switch command {
	case "register":
		err = register(*addr, email)
	case "makeadmin":
		err = editClaim(*addr, "/makeadmin", *token, email)
	case "removeadmin":
		err = editClaim(*addr, "/removeadmin", *token, email)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println("Success!")
}

func register(addr, email string) error {
	fmt.Print("Enter password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": string(password),
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(strings.TrimRight(addr, "/")+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return err
	}

	fmt.Println(auth.Token)
	return nil
}

func editClaim(addr, route, token, email string) error {
	if token == "" {
		return fmt.Errorf("%s requires an admin token (-t)", route)
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(addr, "/")+route, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return responseError(resp)
	}

	return nil
}

func responseError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if len(payload) == 0 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
}
