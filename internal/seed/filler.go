package seed

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
)

// Multipliers applied to the fill ratio.
const (
	questionsPerRatio  = 10
	answersPerRatio    = 100
	ratingsPerRatio    = 200
	maxTagsPerQuestion = 5
	fillerPassword     = "password123"
)

type FillOptions struct {
	Ratio        int
	Batch        int
	CounterBatch int
}

type FillResult struct {
	Users     int
	Tags      int
	Questions int
	Answers   int
	Likes     int
	Dislikes  int
	Duration  time.Duration
}

// Filler generates a proportional synthetic dataset through the ORM.
type Filler struct {
	db  *gorm.DB
	rng *rand.Rand
	out io.Writer
	now func() time.Time
}

func NewFiller(db *gorm.DB, rng *rand.Rand, out io.Writer) *Filler {
	return &Filler{db: db, rng: rng, out: out, now: time.Now}
}

func (f *Filler) Run(ctx context.Context, opts FillOptions) (*FillResult, error) {
	if opts.Ratio <= 0 {
		return nil, fmt.Errorf("ratio must be positive, got %d", opts.Ratio)
	}
	if opts.Batch <= 0 {
		opts.Batch = 5000
	}
	start := f.now()
	db := f.db.WithContext(ctx)
	res := &FillResult{}

	// names carry a run id so repeated fills do not collide on unique columns
	run := strconv.FormatInt(f.rng.Int63n(1<<30), 36)

	fmt.Fprintf(f.out, "Creating %d users...\n", opts.Ratio)
	users, err := f.createUsers(db, run, opts)
	if err != nil {
		return nil, err
	}
	res.Users = len(users)

	fmt.Fprintf(f.out, "Creating %d tags...\n", opts.Ratio)
	tags, err := f.createTags(db, run, opts)
	if err != nil {
		return nil, err
	}
	res.Tags = len(tags)

	fmt.Fprintf(f.out, "Creating %d questions...\n", opts.Ratio*questionsPerRatio)
	questions, err := f.createQuestions(db, users, tags, opts)
	if err != nil {
		return nil, err
	}
	res.Questions = len(questions)

	fmt.Fprintf(f.out, "Creating %d answers...\n", opts.Ratio*answersPerRatio)
	if res.Answers, err = f.createAnswers(db, users, questions, opts); err != nil {
		return nil, err
	}

	fmt.Fprintf(f.out, "Creating %d ratings...\n", opts.Ratio*ratingsPerRatio)
	if res.Likes, res.Dislikes, err = f.createRatings(db, users, questions, opts); err != nil {
		return nil, err
	}

	fmt.Fprintln(f.out, "Updating counters...")
	if _, err := RecomputeCounters(ctx, f.db, opts.CounterBatch, f.out); err != nil {
		return nil, err
	}

	res.Duration = f.now().Sub(start)
	fmt.Fprintf(f.out, "Successfully filled database in %.2f seconds\n", res.Duration.Seconds())
	return res, nil
}

func (f *Filler) randomPast() time.Time {
	return f.now().Add(-time.Duration(f.rng.Intn(366)) * 24 * time.Hour)
}

func (f *Filler) createUsers(db *gorm.DB, run string, opts FillOptions) ([]user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(fillerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	users := make([]user.User, opts.Ratio)
	for i := range users {
		users[i] = user.User{
			Username:     fmt.Sprintf("user_%s_%d", run, i),
			Email:        fmt.Sprintf("user_%s_%d@example.com", run, i),
			Nickname:     fmt.Sprintf("nickname_%s_%d", run, i),
			PasswordHash: string(hash),
		}
	}
	if err := db.CreateInBatches(&users, opts.Batch).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

func (f *Filler) createTags(db *gorm.DB, run string, opts FillOptions) ([]tag.Tag, error) {
	tags := make([]tag.Tag, opts.Ratio)
	for i := range tags {
		tags[i] = tag.Tag{Title: fmt.Sprintf("tag_%s_%d", run, i)}
	}
	if err := db.CreateInBatches(&tags, opts.Batch).Error; err != nil {
		return nil, fmt.Errorf("create tags: %w", err)
	}
	return tags, nil
}

func (f *Filler) createQuestions(db *gorm.DB, users []user.User, tags []tag.Tag, opts FillOptions) ([]question.Question, error) {
	questions := make([]question.Question, opts.Ratio*questionsPerRatio)
	for i := range questions {
		questions[i] = question.Question{
			Title:     fmt.Sprintf("Question %d", i),
			Text:      fmt.Sprintf("Text of question %d", i),
			AuthorID:  users[f.rng.Intn(len(users))].ID,
			CreatedAt: f.randomPast(),
		}
	}
	if err := db.Omit(clause.Associations).CreateInBatches(&questions, opts.Batch).Error; err != nil {
		return nil, fmt.Errorf("create questions: %w", err)
	}

	perQuestion := min(maxTagsPerQuestion, len(tags))
	links := make([]question.QuestionTag, 0, len(questions)*perQuestion)
	for _, q := range questions {
		for _, idx := range f.rng.Perm(len(tags))[:perQuestion] {
			links = append(links, question.QuestionTag{QuestionID: q.ID, TagID: tags[idx].ID})
		}
	}
	if len(links) > 0 {
		if err := db.Omit(clause.Associations).CreateInBatches(&links, opts.Batch).Error; err != nil {
			return nil, fmt.Errorf("link tags: %w", err)
		}
	}
	return questions, nil
}

// createAnswers marks at most one random answer correct per question.
func (f *Filler) createAnswers(db *gorm.DB, users []user.User, questions []question.Question, opts FillOptions) (int, error) {
	answers := make([]answer.Answer, opts.Ratio*answersPerRatio)
	byQuestion := make(map[uint][]int)
	for i := range answers {
		q := questions[f.rng.Intn(len(questions))]
		answers[i] = answer.Answer{
			QuestionID: q.ID,
			AuthorID:   users[f.rng.Intn(len(users))].ID,
			Text:       fmt.Sprintf("Answer %d to question %d", i, q.ID),
			CreatedAt:  f.randomPast(),
		}
		byQuestion[q.ID] = append(byQuestion[q.ID], i)
	}
	for _, idxs := range byQuestion {
		if f.rng.Intn(2) == 0 {
			answers[idxs[f.rng.Intn(len(idxs))]].IsCorrect = true
		}
	}

	if err := db.Omit(clause.Associations).CreateInBatches(&answers, opts.Batch).Error; err != nil {
		return 0, fmt.Errorf("create answers: %w", err)
	}
	return len(answers), nil
}

type ratingPair struct {
	userIdx, questionIdx int
}

// samplePairs picks n distinct (user, question) pairs, capped by how many exist.
func (f *Filler) samplePairs(users, questions, n int) []ratingPair {
	total := users * questions
	if n > total {
		n = total
	}

	// dense requests enumerate and shuffle; sparse ones use rejection sampling
	if n*2 >= total {
		pairs := make([]ratingPair, 0, total)
		for u := 0; u < users; u++ {
			for q := 0; q < questions; q++ {
				pairs = append(pairs, ratingPair{u, q})
			}
		}
		f.rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
		return pairs[:n]
	}

	seen := make(map[ratingPair]struct{}, n)
	pairs := make([]ratingPair, 0, n)
	for len(pairs) < n {
		p := ratingPair{f.rng.Intn(users), f.rng.Intn(questions)}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	return pairs
}

func (f *Filler) createRatings(db *gorm.DB, users []user.User, questions []question.Question, opts FillOptions) (int, int, error) {
	pairs := f.samplePairs(len(users), len(questions), opts.Ratio*ratingsPerRatio)

	var likes []question.QuestionLike
	var dislikes []question.QuestionDislike
	for _, p := range pairs {
		qID, uID := questions[p.questionIdx].ID, users[p.userIdx].ID
		if f.rng.Intn(2) == 0 {
			likes = append(likes, question.QuestionLike{QuestionID: qID, UserID: uID})
		} else {
			dislikes = append(dislikes, question.QuestionDislike{QuestionID: qID, UserID: uID})
		}
	}

	if len(likes) > 0 {
		if err := db.Omit(clause.Associations).CreateInBatches(&likes, opts.Batch).Error; err != nil {
			return 0, 0, fmt.Errorf("create likes: %w", err)
		}
	}
	if len(dislikes) > 0 {
		if err := db.Omit(clause.Associations).CreateInBatches(&dislikes, opts.Batch).Error; err != nil {
			return 0, 0, fmt.Errorf("create dislikes: %w", err)
		}
	}
	return len(likes), len(dislikes), nil
}
