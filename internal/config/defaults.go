package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/yta/data/db/catalog.db"
	}
	if cfg.Storage.VectorIndexDir == "" {
		cfg.Storage.VectorIndexDir = "/usr/local/var/yta/data/indices/vector"
	}
	if cfg.Storage.KeywordIndexPath == "" {
		cfg.Storage.KeywordIndexPath = "/usr/local/var/yta/data/indices/bleve"
	}
	if cfg.Storage.BlobBackend == "" {
		cfg.Storage.BlobBackend = "disk"
	}
	if cfg.Storage.BlobDir == "" {
		cfg.Storage.BlobDir = "/usr/local/var/yta/data/blobs"
	}
	if cfg.Media.YTDLPPath == "" {
		cfg.Media.YTDLPPath = "yt-dlp"
	}
	if cfg.Media.FFmpegPath == "" {
		cfg.Media.FFmpegPath = "ffmpeg"
	}
	if cfg.Media.FFprobePath == "" {
		cfg.Media.FFprobePath = "ffprobe"
	}
	if cfg.Media.TargetSeconds == 0 {
		cfg.Media.TargetSeconds = 600
	}
	if cfg.Media.UploadWorkers == 0 {
		cfg.Media.UploadWorkers = 4
	}
	if cfg.Transcribe.Model == "" {
		cfg.Transcribe.Model = "gemini-2.0-flash-001"
	}
	if cfg.Transcribe.APIKeyEnv == "" {
		cfg.Transcribe.APIKeyEnv = "TRANSCRIBE_API_KEY"
	}
	if cfg.Transcribe.Workers == 0 {
		cfg.Transcribe.Workers = 4
	}
	if cfg.Transcribe.TimeoutSeconds == 0 {
		cfg.Transcribe.TimeoutSeconds = 300
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/yta/data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = 5
	}
	if cfg.Search.MaxTopK == 0 {
		cfg.Search.MaxTopK = 100
	}
	if cfg.Search.SplitChars == 0 {
		cfg.Search.SplitChars = 1000
	}
	if cfg.Search.SplitOverlap == 0 {
		cfg.Search.SplitOverlap = 200
	}
	if cfg.Search.KeywordWeight == 0 {
		cfg.Search.KeywordWeight = 0.3
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".mp3", ".m4a", ".wav", ".mp4", ".mkv", ".webm"}
	}
	if cfg.Watch.Collection == "" {
		cfg.Watch.Collection = "inbox"
	}
}
