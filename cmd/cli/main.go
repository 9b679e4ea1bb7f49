package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"herodex/internal/urlcodec"
	"herodex/internal/viewstate"
	"herodex/pkg/models"
	"herodex/pkg/utils"
)

const defaultBaseURL = "http://localhost:8080"

type heroListResponse struct {
	Items     []models.Hero `json:"items"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
	PageSize  string        `json:"page_size"`
	Query     string        `json:"query"`
}

func main() {
	utils.LoadEnv()

	global := flag.NewFlagSet("herodex", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}
	rest := []string{}
	if len(args) > 2 {
		rest = args[2:]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "heroes":
		handleHeroes(ctx, client, *baseURL, sub, rest)
	case "options":
		handleOptions(ctx, client, *baseURL, args[1:])
	case "fields":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, *baseURL+"/fields", nil, &resp); err != nil {
			log.Fatalf("fields failed: %v", err)
		}
		printJSON(resp)
	case "session":
		handleSession(*baseURL, args[1:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

// stateFlags registers the view state parameters on fs and returns a func
// that encodes them the way the browser would.
func stateFlags(fs *flag.FlagSet) func() string {
	q := fs.String("q", "", "search term")
	field := fs.String("field", "", "search field key")
	sort := fs.String("sort", "", "sort as <field>,<asc|desc>")
	size := fs.String("size", "", "page size or all")
	page := fs.Int("page", 0, "page number")
	align := fs.String("align", "", "alignment filter")
	race := fs.String("race", "", "race filter")
	gender := fs.String("gender", "", "gender filter")
	eye := fs.String("eye", "", "eye color filter")
	hair := fs.String("hair", "", "hair color filter")

	return func() string {
		qv := url.Values{}
		set := func(k, v string) {
			if v != "" {
				qv.Set(k, v)
			}
		}
		set("q", *q)
		set("field", *field)
		set("sort", *sort)
		set("size", *size)
		if *page > 0 {
			set("page", strconv.Itoa(*page))
		}
		set("align", *align)
		set("race", *race)
		set("gender", *gender)
		set("eye", *eye)
		set("hair", *hair)

		// normalize through the codec so the request matches a synced address
		st := viewstate.New()
		urlcodec.FromValues(qv).Apply(st)
		return urlcodec.Encode(st)
	}
}

func handleHeroes(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "search":
		fs := flag.NewFlagSet("heroes search", flag.ExitOnError)
		encode := stateFlags(fs)
		raw := fs.Bool("json", false, "print the raw response")
		_ = fs.Parse(args)

		var resp heroListResponse
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/heroes?"+encode(), nil, &resp); err != nil {
			log.Fatalf("search failed: %v", err)
		}
		if *raw {
			printJSON(resp)
			return
		}
		printHeroTable(resp)
	case "show":
		fs := flag.NewFlagSet("heroes show", flag.ExitOnError)
		id := fs.Int("id", 0, "hero id")
		_ = fs.Parse(args)
		if *id == 0 {
			log.Fatal("hero id is required")
		}

		var resp models.Hero
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/heroes/"+strconv.Itoa(*id), nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: herodex heroes <search|show>")
	}
}

func handleOptions(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("options", flag.ExitOnError)
	category := fs.String("category", "", "align|race|gender|eye|hair")
	_ = fs.Parse(args)

	endpoint := baseURL + "/options"
	if *category != "" {
		endpoint += "?category=" + url.QueryEscape(*category)
	}
	var resp any
	if err := doJSON(ctx, client, http.MethodGet, endpoint, nil, &resp); err != nil {
		log.Fatalf("options failed: %v", err)
	}
	printJSON(resp)
}

func handleSession(baseURL string, args []string) {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	tcpAddr := fs.String("tcp", "", "use the TCP session server at this address instead of the websocket")
	pretty := fs.Bool("pretty", false, "pretty print frames")
	encode := stateFlags(fs)
	_ = fs.Parse(args)

	var err error
	if *tcpAddr != "" {
		err = runSessionTCP(*tcpAddr, encode(), *pretty)
	} else {
		endpoint, uerr := websocketURL(baseURL, "/ws")
		if uerr != nil {
			log.Fatalf("ws url: %v", uerr)
		}
		err = runSessionWS(endpoint+"?"+encode(), *pretty)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		log.Fatalf("session failed: %v", err)
	}
}

func runSessionWS(wsURL string, pretty bool) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[session] connected to %s", wsURL)

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			printFrame(msg, pretty)
		}
	}()

	return readActions(func(b []byte) error {
		return conn.WriteMessage(websocket.TextMessage, b)
	})
}

func runSessionTCP(addr, initial string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	log.Printf("[session] connected to %s", addr)

	go func() {
		sc := bufio.NewScanner(conn)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			printFrame(sc.Bytes(), pretty)
		}
	}()

	send := func(b []byte) error {
		_, err := conn.Write(append(b, '\n'))
		return err
	}
	if initial != "" {
		b, _ := json.Marshal(map[string]string{"action": "restore", "value": initial})
		if err := send(b); err != nil {
			return err
		}
	}
	return readActions(send)
}

// readActions turns stdin lines into actions until EOF.
func readActions(send func([]byte) error) error {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		a, err := parseAction(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		b, err := json.Marshal(a)
		if err != nil {
			return err
		}
		if err := send(b); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

type frameSummary struct {
	Type   string `json:"type"`
	Query  string `json:"query"`
	Error  string `json:"error"`
	Result struct {
		Items     []models.Hero `json:"items"`
		Total     int           `json:"total"`
		Page      int           `json:"page"`
		PageCount int           `json:"page_count"`
	} `json:"result"`
	Selected *models.Hero `json:"selected"`
}

func printFrame(msg []byte, pretty bool) {
	if pretty {
		var obj map[string]any
		if err := json.Unmarshal(msg, &obj); err != nil {
			fmt.Println(string(msg))
			return
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
		return
	}

	var f frameSummary
	if err := json.Unmarshal(msg, &f); err != nil {
		fmt.Println(string(msg))
		return
	}
	if f.Type == "error" {
		fmt.Println("error:", f.Error)
		return
	}
	fmt.Printf("?%s  (%d heroes, page %d/%d)\n", f.Query, f.Result.Total, f.Result.Page, max(1, f.Result.PageCount))
	for _, h := range f.Result.Items {
		fmt.Printf("  %4d  %s\n", h.ID, h.Name)
	}
	if f.Selected != nil {
		fmt.Printf("selected: %s (%s)\n", f.Selected.Name, f.Selected.Biography.FullName)
	}
}

func printHeroTable(resp heroListResponse) {
	fmt.Printf("?%s  (%d heroes, page %d/%d)\n", resp.Query, resp.Total, resp.Page, max(1, resp.PageCount))
	for _, h := range resp.Items {
		fmt.Printf("%5d  %-24s STR %3d  SPD %3d  %-8s %s\n",
			h.ID, h.Name, h.Powerstats.Strength, h.Powerstats.Speed, h.Biography.Alignment, h.Appearance.RaceName())
	}
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/heroes.json", "output JSON path")
		encode := stateFlags(fs)
		_ = fs.Parse(args)

		items, err := fetchHeroes(ctx, client, baseURL, encode())
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("[export] exported %d heroes to %s", len(items), *out)
	case "csv":
		fs := flag.NewFlagSet("export csv", flag.ExitOnError)
		out := fs.String("out", "data/heroes.csv", "output CSV path")
		encode := stateFlags(fs)
		_ = fs.Parse(args)

		items, err := fetchHeroes(ctx, client, baseURL, encode())
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, items); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("[export] exported %d heroes to %s", len(items), *out)
	default:
		log.Fatal("usage: herodex export <json|csv>")
	}
}

// fetchHeroes asks for the whole filtered, ordered result in one page.
func fetchHeroes(ctx context.Context, client *http.Client, baseURL, query string) ([]models.Hero, error) {
	st := viewstate.New()
	urlcodec.Restore(st, query)
	st.SetPageSize(viewstate.All)

	var resp heroListResponse
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/heroes?"+urlcodec.Encode(st), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func writeJSON(path string, items []models.Hero) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.Hero) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "name", "full_name", "intelligence", "strength", "speed", "durability", "power", "combat",
		"gender", "race", "height", "weight", "eye_color", "hair_color", "alignment", "occupation", "affiliation",
	}); err != nil {
		return err
	}
	for _, h := range items {
		ps := h.Powerstats
		if err := writer.Write([]string{
			strconv.Itoa(h.ID),
			h.Name,
			h.Biography.FullName,
			strconv.Itoa(ps.Intelligence),
			strconv.Itoa(ps.Strength),
			strconv.Itoa(ps.Speed),
			strconv.Itoa(ps.Durability),
			strconv.Itoa(ps.Power),
			strconv.Itoa(ps.Combat),
			h.Appearance.Gender,
			h.Appearance.RaceName(),
			h.Appearance.MetricHeight(),
			h.Appearance.MetricWeight(),
			h.Appearance.EyeColor,
			h.Appearance.HairColor,
			h.Biography.Alignment,
			h.Work.Occupation,
			h.Connections.GroupAffiliation,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("herodex <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  heroes search|show")
	fmt.Println("  options [-category align|race|gender|eye|hair]")
	fmt.Println("  fields")
	fmt.Println("  session [-tcp addr]")
	fmt.Println("  export json|csv")
}
