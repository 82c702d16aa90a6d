// Command tester is a terminal chat client for manual sessions against a
// running hub. It joins under a display name, prints the room feed with one
// color per sender, and dumps a per-sender message tally on exit.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/net/websocket"
)

type frame struct {
	Type     string `json:"type"`
	Content  string `json:"content,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Message  string `json:"message,omitempty"`
	IsTyping bool   `json:"is_typing,omitempty"`
}

var palette = []color.Color{
	color.FgGreen, color.FgYellow, color.FgCyan,
	color.FgMagenta, color.FgBlue, color.FgRed,
}

type feedPrinter struct {
	mu       sync.Mutex
	colours  bool
	bySender map[string]color.Color
	counts   map[string]int
}

func newFeedPrinter(colours bool) *feedPrinter {
	return &feedPrinter{
		colours:  colours,
		bySender: make(map[string]color.Color),
		counts:   make(map[string]int),
	}
}

func (p *feedPrinter) render(sender, text string) string {
	if !p.colours {
		return fmt.Sprintf("%s: %s", sender, text)
	}
	c, ok := p.bySender[sender]
	if !ok {
		c = palette[len(p.bySender)%len(palette)]
		p.bySender[sender] = c
	}
	return fmt.Sprintf("%s: %s", color.New(c).Render(sender), text)
}

func (p *feedPrinter) print(f frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch f.Type {
	case "message":
		p.counts[f.Sender]++
		fmt.Println(p.render(f.Sender, f.Message))
	case "typing":
		if f.IsTyping {
			fmt.Println(p.render(f.Sender, "is typing..."))
		}
	}
}

func (p *feedPrinter) summary(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	senders := make([]string, 0, len(p.counts))
	for sender := range p.counts {
		senders = append(senders, sender)
	}
	sort.Strings(senders)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sender", "Messages"})
	for _, sender := range senders {
		table.Append([]string{sender, strconv.Itoa(p.counts[sender])})
	}
	table.Render()
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if len(os.Args) > 1 {
		cfg.Username = os.Args[1]
	}

	wsURL := strings.TrimRight(cfg.HubURL, "/") + "/ws/" + url.PathEscape(cfg.Username)
	origin := strings.Replace(cfg.HubURL, "ws://", "http://", 1)
	conn, err := websocket.Dial(wsURL, "", origin)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", wsURL, err)
	}
	defer conn.Close()

	fmt.Printf("Connected as %s. Type a message and press enter; /quit to leave.\n", cfg.Username)

	printer := newFeedPrinter(cfg.Colours)
	done := make(chan struct{})
	go func() {
		defer close(done)
		decoder := json.NewDecoder(conn)
		for {
			var f frame
			if err := decoder.Decode(&f); err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("Connection lost: %v", err)
				}
				return
			}
			printer.print(f)
		}
	}()

	encoder := json.NewEncoder(conn)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}
		if err := encoder.Encode(frame{Type: "message", Content: line}); err != nil {
			log.Printf("Send failed: %v", err)
			break
		}
	}

	_ = conn.Close()
	<-done

	fmt.Println("\nSession summary:")
	printer.summary(os.Stdout)
}
