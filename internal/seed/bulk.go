package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
)

// Fixed data used by the bulk loader.
var BulkTagTitles = []string{"python", "django", "postgres", "asyncio", "debug"}

const (
	bulkUsername = "bulk_user"
	bulkText     = "Auto generated content"
)

// Statements run on the pinned connection around the load.
var (
	suspendStatements = []string{
		"SET session_replication_role = 'replica'",
		"ALTER TABLE questions DISABLE TRIGGER ALL",
		"ALTER TABLE question_tags DISABLE TRIGGER ALL",
	}
	restoreStatements = []string{
		"ALTER TABLE questions ENABLE TRIGGER ALL",
		"ALTER TABLE question_tags ENABLE TRIGGER ALL",
		"SET session_replication_role = 'origin'",
		"REINDEX TABLE questions",
		"REINDEX TABLE question_tags",
	}
)

// QuestionBatch is one transaction worth of generated questions. Every
// question gets every tag in TagIDs.
type QuestionBatch struct {
	Titles    []string
	Text      string
	AuthorID  uint
	CreatedAt time.Time
	TagIDs    []uint
}

// Session is a single database connection held for the whole load, so
// session-level settings apply to every batch.
type Session interface {
	Exec(ctx context.Context, sql string) error
	// InsertQuestions inserts the batch and its tag links in one transaction
	// and returns the number of questions written.
	InsertQuestions(ctx context.Context, b QuestionBatch) (int, error)
}

type BulkOptions struct {
	Count int
	Batch int
}

type BulkResult struct {
	Created  int
	Duration time.Duration
}

// BulkLoader inserts large numbers of questions with triggers suspended.
type BulkLoader struct {
	db      *gorm.DB
	session Session
	out     io.Writer
	now     func() time.Time
}

func NewBulkLoader(db *gorm.DB, session Session, out io.Writer) *BulkLoader {
	return &BulkLoader{db: db, session: session, out: out, now: time.Now}
}

// planBatches splits count into batch-sized chunks, the last one possibly shorter.
func planBatches(count, batch int) []int {
	if count <= 0 {
		return nil
	}
	if batch <= 0 {
		batch = count
	}
	sizes := make([]int, 0, (count+batch-1)/batch)
	for left := count; left > 0; left -= batch {
		sizes = append(sizes, min(batch, left))
	}
	return sizes
}

// ensureFixtures returns the author of generated questions (the first user,
// or a new bulk_user) and the ids of the fixed tags.
func (l *BulkLoader) ensureFixtures(ctx context.Context) (uint, []uint, error) {
	db := l.db.WithContext(ctx)

	var author user.User
	err := db.Order("id").Limit(1).Find(&author).Error
	if err != nil {
		return 0, nil, fmt.Errorf("find author: %w", err)
	}
	if author.ID == 0 {
		author = user.User{
			Username:     bulkUsername,
			Email:        "bulk@example.com",
			Nickname:     bulkUsername,
			PasswordHash: "!",
		}
		if err := db.Create(&author).Error; err != nil {
			return 0, nil, fmt.Errorf("create bulk author: %w", err)
		}
	}

	tagIDs := make([]uint, 0, len(BulkTagTitles))
	for _, title := range BulkTagTitles {
		var t tag.Tag
		if err := db.Where(tag.Tag{Title: title}).FirstOrCreate(&t).Error; err != nil {
			return 0, nil, fmt.Errorf("ensure tag %s: %w", title, err)
		}
		tagIDs = append(tagIDs, t.ID)
	}
	return author.ID, tagIDs, nil
}

func (l *BulkLoader) suspend(ctx context.Context) {
	for _, stmt := range suspendStatements {
		if err := l.session.Exec(ctx, stmt); err != nil {
			log.Printf("[seed] warning: could not disable checks (%s): %v", stmt, err)
		}
	}
}

// restore runs on a fresh context so a cancelled load still re-enables triggers.
func (l *BulkLoader) restore() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	for _, stmt := range restoreStatements {
		if err := l.session.Exec(ctx, stmt); err != nil {
			log.Printf("[seed] warning: could not restore (%s): %v", stmt, err)
		}
	}
}

// Run inserts opts.Count questions. A failed batch is rolled back and its error
// returned once restoration has been attempted; earlier batches stay committed.
func (l *BulkLoader) Run(ctx context.Context, opts BulkOptions) (*BulkResult, error) {
	authorID, tagIDs, err := l.ensureFixtures(ctx)
	if err != nil {
		return nil, err
	}

	start := l.now()
	fmt.Fprintf(l.out, "Starting creation of %d questions...\n", opts.Count)

	l.suspend(ctx)
	defer l.restore()

	created := 0
	for _, size := range planBatches(opts.Count, opts.Batch) {
		titles := make([]string, size)
		for j := range titles {
			titles[j] = fmt.Sprintf("Question %d", created+j+1)
		}

		n, err := l.session.InsertQuestions(ctx, QuestionBatch{
			Titles:    titles,
			Text:      bulkText,
			AuthorID:  authorID,
			CreatedAt: l.now(),
			TagIDs:    tagIDs,
		})
		if err != nil {
			fmt.Fprintf(l.out, "Error: %v\n", err)
			return &BulkResult{Created: created, Duration: l.now().Sub(start)}, fmt.Errorf("batch at %d: %w", created, err)
		}
		created += n

		elapsed := l.now().Sub(start).Seconds()
		rate := 0.0
		if elapsed > 0 {
			rate = float64(created) / elapsed
		}
		fmt.Fprintf(l.out, "Created %d/%d records (%.2f rec/sec) [Elapsed: %.2fs]\n", created, opts.Count, rate, elapsed)
	}

	result := &BulkResult{Created: created, Duration: l.now().Sub(start)}
	secs := result.Duration.Seconds()
	rate := 0.0
	if secs > 0 {
		rate = float64(created) / secs
	}
	fmt.Fprintf(l.out, "Successfully created %d questions in %.2f seconds (%.2f rec/sec)\n", created, secs, rate)
	return result, nil
}
