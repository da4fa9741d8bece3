package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/pkg/database"
	"mindmate-be/pkg/embedding"
	"mindmate-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the shared knowledge base from a directory of .txt/.md documents:
// split, embed, bulk-insert.
func main() {
	dir := flag.String("dir", "./knowledge", "directory of .txt/.md documents to ingest")
	chunkSize := flag.Int("chunk-size", 1500, "chunk size in characters")
	overlap := flag.Int("overlap", 200, "overlap between chunks in characters")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if os.Getenv("EMBEDDING_PROVIDER") == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(os.Getenv("GOOGLE_GEMINI_API_KEY"))
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Error: Failed to read directory %s: %v", *dir, err)
	}

	color.Cyan("🚀 Seeding knowledge base from %s\n", *dir)

	totalChunks := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		color.Yellow("\n[SEED] %s", entry.Name())

		raw, err := os.ReadFile(filepath.Join(*dir, entry.Name()))
		if err != nil {
			color.Red("Failed to read: %v", err)
			continue
		}

		chunks := utils.SplitText(string(raw), *chunkSize, *overlap)

		chunkEntities := make([]*entity.KnowledgeChunk, 0, len(chunks))
		embeddings := make([][]float32, 0, len(chunks))
		failed := false
		for i, chunk := range chunks {
			res, err := embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
			if err != nil {
				color.Red("Failed to embed chunk %d: %v", i, err)
				failed = true
				break
			}
			chunkEntities = append(chunkEntities, &entity.KnowledgeChunk{
				Id:         uuid.New(),
				Source:     entry.Name(),
				Content:    chunk,
				ChunkIndex: i,
				CreatedAt:  time.Now(),
			})
			embeddings = append(embeddings, res.Embedding.Values)
		}
		if failed {
			continue
		}

		uow := uowFactory.NewUnitOfWork(ctx)
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunkEntities, embeddings); err != nil {
			color.Red("Failed to insert: %v", err)
			continue
		}

		color.Green("Inserted %d chunks", len(chunkEntities))
		totalChunks += len(chunkEntities)
	}

	color.Cyan("\n✅ Done. %d chunks ingested.", totalChunks)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
