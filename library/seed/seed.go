package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aegislib/circulation/library/core"
)

const (
	defaultBookCount     = 6000
	defaultMemberCount   = 2000
	defaultRequestCount  = 60
	defaultBooksWithCopy = 500
	copiesPerBook        = 3

	publisher          = "Aegis Publications"
	edition            = "v.2.4 Neural"
	seededTotalCopies  = 5
	seededAvailable    = 3
	seedYear           = 2024
	requestWindow      = 10 * 24 * time.Hour
	minimumReliability = 75
	reliabilitySpread  = 25
)

var (
	categories = []string{
		"Quantum Physics", "Neural Arts", "Bio-Ethics", "History",
		"Fiction", "Dystopian", "Philosophy", "Architecture",
	}
	authors = []string{
		"Marcus Aurelius", "Sarah J. Miller", "Neo Rivera",
		"Matt Haig", "Isaac Asimov", "Ursula Le Guin",
	}
	departments = []string{
		"Quantum Engineering", "Digital Philosophy", "Neural Arts",
		"Robotics", "Ethical AI", "Aerospace",
	}
	moods = []string{"Analytical", "Oceanic"}
)

// Sizes controls how much is generated.
type Sizes struct {
	Books         int
	Members       int
	Requests      int
	BooksWithCopy int
}

// DefaultSizes are 6000 books, 2000 members and 60 requests, with copies for the first 500 books.
func DefaultSizes() Sizes {
	return Sizes{
		Books:         defaultBookCount,
		Members:       defaultMemberCount,
		Requests:      defaultRequestCount,
		BooksWithCopy: defaultBooksWithCopy,
	}
}

// Data is everything the engine is bootstrapped with.
type Data struct {
	Books    []core.Book
	Copies   []core.BookCopy
	Members  []core.UserProfile
	Requests []core.UserRequest
	Rules    []core.Rule
}

// Generator produces Data. It is not safe for concurrent use because *rand.Rand isn't.
type Generator struct {
	rand *rand.Rand
	now  time.Time
}

func NewGenerator(r *rand.Rand, now time.Time) Generator {
	return Generator{rand: r, now: now}
}

// Generate produces a complete data set of the given sizes.
func (g Generator) Generate(sizes Sizes) Data {
	books := g.Books(sizes.Books)

	return Data{
		Books:    books,
		Copies:   Copies(books, sizes.BooksWithCopy),
		Members:  g.Members(sizes.Members),
		Requests: g.Requests(sizes.Requests),
		Rules:    DefaultRules(),
	}
}

// Books generates count catalog records B-10000, B-10001, ...
func (g Generator) Books(count int) []core.Book {
	books := make([]core.Book, 0, count)

	for i := range count {
		books = append(books, core.Book{
			ID:              fmt.Sprintf("B-%d", 10000+i),
			ISBN:            fmt.Sprintf("978-%d", 1000000000+g.rand.Int63n(9000000000)),
			Title:           fmt.Sprintf("Artifact Title %d", 10000+i),
			Author:          authors[i%len(authors)],
			Publisher:       publisher,
			Edition:         edition,
			Category:        categories[i%len(categories)],
			CoverURL:        fmt.Sprintf("https://picsum.photos/seed/book%d/200/300", i),
			Mood:            append([]string(nil), moods...),
			Demand:          demandOf(i),
			TotalCopies:     seededTotalCopies,
			AvailableCopies: seededAvailable,
		})
	}

	return books
}

func demandOf(i int) core.DemandLevel {
	switch {
	case i%10 == 0:
		return core.DemandCritical
	case i%5 == 0:
		return core.DemandHigh
	default:
		return core.DemandMedium
	}
}

// Copies generates three copies for each of the first booksWithCopy books.
// Every 15th position is damaged, every other 8th is issued. Every 8th position, damaged or not,
// was last handled by a seeded student.
func Copies(books []core.Book, booksWithCopy int) []core.BookCopy {
	booksWithCopy = min(booksWithCopy, len(books))
	copies := make([]core.BookCopy, 0, booksWithCopy*copiesPerBook)

	for bIdx, book := range books[:booksWithCopy] {
		for c := 1; c <= copiesPerBook; c++ {
			bookCopy := core.BookCopy{
				ID:            fmt.Sprintf("ACC-%d", 10000+bIdx*copiesPerBook+c),
				BookID:        book.ID,
				Status:        core.CopyAvailable,
				Condition:     core.ConditionGood,
				ShelfLocation: fmt.Sprintf("S%d-R%d", bIdx/20, c),
			}

			position := bIdx + c
			switch {
			case position%15 == 0:
				bookCopy.Status = core.CopyDamaged
				bookCopy.Condition = core.ConditionDamaged
			case position%8 == 0:
				bookCopy.Status = core.CopyIssued
			}

			if position%8 == 0 {
				bookCopy.LastHandledBy = fmt.Sprintf("LIB-%d-STU-%d", seedYear, 10000+bIdx%2000)
			}

			copies = append(copies, bookCopy)
		}
	}

	return copies
}

// Members generates count students member_1000, member_1001, ...
// Every 100th is suspended and every 200th privileged.
func (g Generator) Members(count int) []core.UserProfile {
	members := make([]core.UserProfile, 0, count)

	for i := range count {
		member := core.UserProfile{
			Username:         fmt.Sprintf("member_%d", 1000+i),
			Name:             fmt.Sprintf("Student Name %d", 1000+i),
			Role:             core.RoleStudent,
			LibraryID:        fmt.Sprintf("LIB-%d-STU-%d", seedYear, 10000+i),
			Department:       departments[i%len(departments)],
			Status:           core.MemberActive,
			Tier:             core.TierNormal,
			ReliabilityScore: minimumReliability + g.rand.Intn(reliabilitySpread),
		}

		if i%100 == 0 {
			member.Status = core.MemberSuspended
		}

		if i%200 == 0 {
			member.Tier = core.TierPrivileged
		}

		members = append(members, member)
	}

	return members
}

// Requests generates count pending requests REQ-5000, REQ-5001, ..., alternating
// between book acquisitions (even) and member enrollments (odd).
func (g Generator) Requests(count int) []core.UserRequest {
	requests := make([]core.UserRequest, 0, count)

	for i := range count {
		request := core.UserRequest{
			ID:        fmt.Sprintf("REQ-%d", 5000+i),
			Status:    core.RequestPending,
			Timestamp: g.now.Add(-time.Duration(g.rand.Int63n(int64(requestWindow)))),
			Priority:  core.PriorityMedium,
		}

		if i%2 == 0 {
			request.Type = core.RequestBookAcquisition
			request.UserID = fmt.Sprintf("member_%d", 1000+i)
			request.Data = core.AcquisitionData{
				Title:  fmt.Sprintf("Requested Artifact %d", i),
				Author: authors[i%len(authors)],
			}
		} else {
			request.Type = core.RequestUserEnrollment
			request.Data = core.EnrollmentData{
				Name:       fmt.Sprintf("Applicant %d", i),
				Department: departments[i%len(departments)],
			}
		}

		if i%10 == 0 {
			request.Priority = core.PriorityHigh
		}

		requests = append(requests, request)
	}

	return requests
}

// DefaultRules are the three policy rules every library starts with.
func DefaultRules() []core.Rule {
	return []core.Rule{
		{ID: "1", Condition: "Demand > 300% / Sector", Action: "Sync: Restrict window to 2d", IsActive: true},
		{ID: "2", Condition: "Overdue Artifacts > 3", Action: "Lock Identity Node", IsActive: true},
		{ID: "3", Condition: "Unpaid Fines > $50", Action: "Restrict Access Hub", IsActive: true},
	}
}
