// Package main is the yta CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gamedevCloudy/youtube-automation/internal/blob"
	"github.com/gamedevCloudy/youtube-automation/internal/config"
	"github.com/gamedevCloudy/youtube-automation/internal/embedding"
	"github.com/gamedevCloudy/youtube-automation/internal/indexer"
	"github.com/gamedevCloudy/youtube-automation/internal/keyword"
	"github.com/gamedevCloudy/youtube-automation/internal/media"
	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/pipeline"
	"github.com/gamedevCloudy/youtube-automation/internal/retriever"
	"github.com/gamedevCloudy/youtube-automation/internal/segmenter"
	"github.com/gamedevCloudy/youtube-automation/internal/server"
	"github.com/gamedevCloudy/youtube-automation/internal/storage"
	"github.com/gamedevCloudy/youtube-automation/internal/transcribe"
	"github.com/gamedevCloudy/youtube-automation/internal/vector"
	"github.com/gamedevCloudy/youtube-automation/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/yta/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "yta server" from the project dir uses the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "query":
		runQuery()
	case "collections":
		runCollections()
	case "delete":
		runDelete()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("yta version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (chunk scheduling, watch events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watcher *pipeline.Watcher
	if len(cfg.Watch.Directories) > 0 {
		watcher = pipeline.NewWatcher(cfg.Watch.Directories, cfg.Watch.Extensions, func(path string) {
			result, ingErr := components.Pipeline.Ingest(context.Background(), &pipeline.IngestRequest{
				CollectionID: cfg.Watch.Collection,
				FilePath:     path,
			})
			if ingErr != nil {
				logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(ingErr))
				return
			}
			logger.Info("watch ingest done",
				zap.String("path", path),
				zap.String("video_id", result.VideoID),
				zap.Int("records", result.Records),
				zap.Int("gaps", len(result.Gaps)),
			)
		}, logger)
		if err := watcher.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Pipeline,
		components.Indexer,
		components.Retriever,
		components.Storage,
		components.Vectors,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watcher != nil {
		watcher.Stop()
	}
	watchCancel()
	if err := components.Vectors.Save(cfg.Storage.VectorIndexDir); err != nil {
		logger.Warn("vector index save failed", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	collection := fs.String("collection", "", "collection to ingest into (default from config watch.collection)")
	target := fs.Float64("target", 0, "chunk length in seconds (default from config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: yta ingest [flags] <url-or-file>")
		os.Exit(1)
	}
	source := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	req := &pipeline.IngestRequest{
		CollectionID:  *collection,
		TargetSeconds: *target,
	}
	if req.CollectionID == "" {
		req.CollectionID = cfg.Watch.Collection
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req.URL = source
	} else {
		abs, absErr := filepath.Abs(source)
		if absErr != nil {
			fmt.Printf("Bad path: %v\n", absErr)
			os.Exit(1)
		}
		req.FilePath = abs
	}

	result, err := components.Pipeline.Ingest(context.Background(), req)
	if err != nil {
		fmt.Printf("Ingest failed: %v\n", err)
		os.Exit(1)
	}
	if err := components.Vectors.Save(cfg.Storage.VectorIndexDir); err != nil {
		logger.Warn("vector index save failed", zap.Error(err))
	}
	printIngestResult(result)
}

func printIngestResult(result *pipeline.IngestResult) {
	transcribed := 0
	for _, c := range result.Chunks {
		if c.HasTranscript {
			transcribed++
		}
	}
	fmt.Printf("Ingested %s into %s\n", result.VideoID, result.CollectionID)
	fmt.Printf("  duration:    %s\n", utils.FormatTimestamp(result.Duration))
	fmt.Printf("  chunks:      %d (%d transcribed)\n", len(result.Chunks), transcribed)
	fmt.Printf("  records:     %d\n", result.Records)
	for _, g := range result.Gaps {
		fmt.Printf("  gap:         %s - %s (%s)\n",
			utils.FormatTimestamp(g.Start), utils.FormatTimestamp(g.End), g.Reason)
	}
}

func runQuery() {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", `server URL; use --server "" for direct storage access`)
	collections := fs.String("collections", "", "comma-separated collection IDs (required)")
	topK := fs.Int("top-k", models.DefaultTopK, "number of results")
	keywordFlag := fs.Bool("keyword", false, "fuse bleve keyword scores into the ranking")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: yta query [flags] <query>\n\n")
		fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
		fs.PrintDefaults()
	}
	queryArgs := queryArgsReorder(os.Args[2:])
	_ = fs.Parse(queryArgs)

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fs.Usage()
		os.Exit(1)
	}
	ids := splitCollections(*collections)
	if len(ids) == 0 {
		fmt.Println("At least one collection is required (--collections a,b)")
		os.Exit(1)
	}

	req := &models.QueryRequest{
		CollectionIDs: ids,
		Query:         query,
		TopK:          *topK,
		Keyword:       *keywordFlag,
	}

	var results []*models.SearchResult
	var err error
	if *serverURL != "" {
		results, err = queryViaHTTP(*serverURL, req)
	} else {
		results, err = queryDirect(*configPath, req)
	}
	if err != nil {
		fmt.Printf("Query failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		printQueryResults(results)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func queryViaHTTP(serverURL string, req *models.QueryRequest) ([]*models.SearchResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"collection_ids": req.CollectionIDs,
		"query":          req.Query,
		"top_k":          req.TopK,
		"keyword":        req.Keyword,
	})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/query", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Results []*models.SearchResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Results, nil
}

func queryDirect(configPath string, req *models.QueryRequest) ([]*models.SearchResult, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	components, err := initializeComponents(context.Background(), cfg, zap.NewNop())
	if err != nil {
		return nil, err
	}
	defer components.Close()
	return components.Retriever.Query(context.Background(), req)
}

func printQueryResults(results []*models.SearchResult) {
	fmt.Printf("\nFound %d result(s)\n\n", len(results))
	for i, r := range results {
		fmt.Printf("─────────────────────────────────────────────────────────\n")
		fmt.Printf("Rank: %d | Score: %.4f", i+1, r.Score)
		if r.KeywordScore > 0 {
			fmt.Printf(" (Keyword: %.4f)", r.KeywordScore)
		}
		fmt.Println()
		fmt.Printf("Video: %s [%s] %s - %s\n",
			r.VideoID, r.CollectionID,
			utils.FormatTimestamp(r.StartTime), utils.FormatTimestamp(r.EndTime))
		fmt.Printf("\n%s\n\n", truncate(r.Text, 300))
	}
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func splitCollections(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// queryArgsReorder moves any flags (and their values) that appear after the
// query text to the front so flag.Parse sees them; parsing otherwise stops at
// the first positional argument.
func queryArgsReorder(args []string) []string {
	flagsWithValue := map[string]bool{
		"-config": true, "--config": true,
		"-server": true, "--server": true,
		"-collections": true, "--collections": true,
		"-top-k": true, "--top-k": true,
		"-output": true, "--output": true,
	}
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
			if flagsWithValue[a] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
			continue
		}
		positional = append(positional, a)
	}
	return append(flags, positional...)
}

func runCollections() {
	fs := flag.NewFlagSet("collections", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/collections")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Collections []*models.CollectionInfo `json:"collections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		os.Exit(1)
	}
	for _, c := range out.Collections {
		fmt.Printf("%s\t%d record(s)\n", c.ID, c.Documents)
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: yta delete [flags] <collection-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	if err := components.Indexer.DeleteCollection(context.Background(), id); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	if err := components.Vectors.Save(cfg.Storage.VectorIndexDir); err != nil {
		logger.Warn("vector index save failed", zap.Error(err))
	}
	fmt.Printf("Collection deleted: %s\n", id)
}

type statusResponse struct {
	Videos          int64    `json:"videos"`
	Chunks          int64    `json:"chunks"`
	Records         int64    `json:"records"`
	VectorIndexSize int      `json:"vector_index_size"`
	Collections     []string `json:"collections"`
	DiskUsageBytes  *int64   `json:"disk_usage_bytes,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", `server URL; use --server "" for direct storage access`)
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status *statusResponse
	if *serverURL != "" {
		s, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Printf("Status failed: %v\n", err)
			os.Exit(1)
		}
		status = s
	} else {
		s, err := statusDirect(*configPath)
		if err != nil {
			fmt.Printf("Status failed: %v\n", err)
			os.Exit(1)
		}
		status = s
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("videos:             %d\n", status.Videos)
		fmt.Printf("chunks:             %d\n", status.Chunks)
		fmt.Printf("records:            %d\n", status.Records)
		fmt.Printf("vector_index_size:  %d\n", status.VectorIndexSize)
		if len(status.Collections) > 0 {
			fmt.Printf("collections:        %s\n", strings.Join(status.Collections, ", "))
		}
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d\n", *status.DiskUsageBytes)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func statusDirect(configPath string) (*statusResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	components, err := initializeComponents(context.Background(), cfg, zap.NewNop())
	if err != nil {
		return nil, err
	}
	defer components.Close()

	ctx := context.Background()
	videos, err := components.Storage.CountVideos(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := components.Storage.CountChunks(ctx)
	if err != nil {
		return nil, err
	}
	records, err := components.Storage.CountRecords(ctx)
	if err != nil {
		return nil, err
	}
	status := &statusResponse{
		Videos:          videos,
		Chunks:          chunks,
		Records:         records,
		VectorIndexSize: components.Vectors.Size(),
		Collections:     components.Vectors.Collections(),
	}
	diskBytes, err := storage.DiskUsageBytes(
		cfg.Storage.DatabasePath,
		cfg.Storage.VectorIndexDir,
		cfg.Storage.KeywordIndexPath,
		cfg.Storage.BlobDir,
	)
	if err == nil {
		status.DiskUsageBytes = &diskBytes
	}
	return status, nil
}

// Components holds initialized services.
type Components struct {
	Storage   storage.Storage
	Embedder  embedding.Embedder
	Vectors   *vector.Index
	Keywords  *keyword.Index
	Blobs     blob.Store
	Indexer   *indexer.Indexer
	Retriever *retriever.Retriever
	Pipeline  *pipeline.Pipeline
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Keywords != nil {
		_ = c.Keywords.Close()
	}
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	vectors, err := vector.NewIndex(embedder.Dimensions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}
	if err := vectors.Load(cfg.Storage.VectorIndexDir); err != nil {
		logger.Warn("vector index load skipped", zap.Error(err))
	}

	keywords, err := keyword.Open(cfg.Storage.KeywordIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	var blobs blob.Store
	switch cfg.Storage.BlobBackend {
	case "gcs":
		blobs, err = blob.NewGCSStore(ctx, cfg.Storage.GCSBucket)
	default:
		blobs, err = blob.NewDiskStore(cfg.Storage.BlobDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	workDir := cfg.Media.WorkDir
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "yta")
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}

	fetcher := media.NewYTDLPFetcher(cfg.Media.YTDLPPath, workDir)
	ffmpeg := media.NewFFmpeg(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)
	seg := segmenter.NewSegmenter(blobs, ffmpeg, workDir, cfg.Media.UploadWorkers, logger)

	timeout := time.Duration(cfg.Transcribe.TimeoutSeconds) * time.Second
	engine := transcribe.NewHTTPEngine(
		cfg.Transcribe.Endpoint,
		cfg.Transcribe.Model,
		os.Getenv(cfg.Transcribe.APIKeyEnv),
		timeout,
	)
	orch := transcribe.NewOrchestrator(engine, cfg.Transcribe.Workers, timeout, logger)

	idx := indexer.New(store, embedder, vectors, keywords, cfg.Search, logger)
	ret := retriever.New(embedder, vectors, keywords, cfg.Search.KeywordWeight, logger)
	p := pipeline.New(fetcher, ffmpeg, seg, orch, store, idx, workDir, cfg.Media.TargetSeconds, logger)

	return &Components{
		Storage:   store,
		Embedder:  embedder,
		Vectors:   vectors,
		Keywords:  keywords,
		Blobs:     blobs,
		Indexer:   idx,
		Retriever: ret,
		Pipeline:  p,
	}, nil
}

func printUsage() {
	fmt.Println(`yta - video transcription and retrieval pipeline

Usage:
  yta server [flags]              Start the HTTP server
  yta ingest [flags] <source>     Ingest a URL or local media file
  yta query [flags] <query>       Search indexed transcripts
  yta collections [flags]         List collections
  yta delete [flags] <id>         Delete a collection
  yta status [flags]              Show catalog and index status
  yta version                     Show version
  yta help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/yta/config.yaml)
  --debug            Enable debug logging

Ingest Flags:
  --config string      Config file path
  --collection string  Collection to ingest into (default from config)
  --target float       Chunk length in seconds (default from config)

Query Flags:
  --config string        Config file path (for direct mode)
  --server string        Server URL (default: http://localhost:8080). Use --server "" for direct storage access.
  --collections string   Comma-separated collection IDs (required)
  --top-k int            Number of results (default: 5)
  --keyword              Fuse keyword scores into the ranking
  --output string        Output format: text or json (default: text)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use --server "" for direct storage access.
  --output string    Output format: text or json (default: text)

Examples:
  yta server
  yta ingest https://www.youtube.com/watch?v=abc123
  yta ingest --collection lectures talk.mp4
  yta query --collections lectures "gradient descent"
  yta query --collections lectures --keyword --top-k 10 "loss function"
  yta query --collections lectures --output json "query"   # structured JSON for other apps
  yta delete lectures
  yta status
  yta status --output json`)
}
