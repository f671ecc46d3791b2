package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"daleel-backend/internal/models"
)

// Message length bounds in characters (runes, not bytes).
const (
	MinMessageLen = 3
	MaxMessageLen = 1000
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1000
)

const systemPromptHeader = `أنت مساعد ذكي متخصص في تقديم معلومات عن الجامعات السورية.
لديك معلومات كاملة عن جميع الجامعات والكليات والتخصصات في سوريا.

معلومات قاعدة البيانات:
`

const systemPromptFooter = `

عند الإجابة:
- كن دقيقاً ومحدداً
- أجب بالعربية فقط
- إذا كان السؤال عن جامعة أو كلية أو تخصص معين، ابحث في المعلومات أعلاه
- إذا لم تجد المعلومة، قل بصراحة أنها غير متوفرة
- قدم معلومات مفيدة وموجزة`

type catalogLister interface {
	ListCatalog(ctx context.Context) ([]*models.UniversityDetails, error)
}

type completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage, temperature float64, maxTokens int) (string, error)
}

// quotaCounter is the slice of the Redis client the daily quota needs.
type quotaCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// AssistantService answers student questions grounded in the catalog. Each
// Ask rebuilds the prompt context from a fresh database read; the service
// itself holds no per-caller state.
type AssistantService struct {
	catalog    catalogLister
	gateway    completer
	quota      quotaCounter
	dailyQuota int
}

func NewAssistantService(catalog catalogLister, gateway completer, quota quotaCounter, dailyQuota int) *AssistantService {
	return &AssistantService{
		catalog:    catalog,
		gateway:    gateway,
		quota:      quota,
		dailyQuota: dailyQuota,
	}
}

// Ask validates the message, enforces the daily quota, assembles the catalog
// context and relays the conversation to the gateway. Validation runs before
// any external call.
func (s *AssistantService) Ask(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	switch n := utf8.RuneCountInString(trimmed); {
	case n == 0:
		return "", errInvalidInput(models.MsgMessageRequired)
	case n < MinMessageLen:
		return "", errInvalidInput(models.MsgMessageTooShort)
	case n > MaxMessageLen:
		return "", errInvalidInput(models.MsgMessageTooLong)
	}

	// Audit trail: identity and length only, never the message content.
	log.Printf("AI chat request from user %s, message length: %d", userID, utf8.RuneCountInString(trimmed))

	if err := s.checkQuota(ctx, userID); err != nil {
		return "", err
	}

	catalog, err := s.catalog.ListCatalog(ctx)
	if err != nil {
		return "", errUpstream(fmt.Errorf("load catalog: %w", err))
	}

	messages := []models.ChatMessage{
		{Role: models.RoleSystem, Content: systemPromptHeader + BuildCatalogContext(catalog) + systemPromptFooter},
		{Role: models.RoleUser, Content: trimmed},
	}
	return s.gateway.Complete(ctx, messages, chatTemperature, chatMaxTokens)
}

// checkQuota counts the user's chats for the current UTC day in Redis. A
// Redis outage fails open: the chat must keep working without the counter.
func (s *AssistantService) checkQuota(ctx context.Context, userID uuid.UUID) error {
	if s.quota == nil || s.dailyQuota <= 0 {
		return nil
	}

	key := fmt.Sprintf("chat_quota:%s:%s", userID, time.Now().UTC().Format("2006-01-02"))
	n, err := s.quota.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("chat quota check skipped for user %s: %v", userID, err)
		return nil
	}
	if n == 1 {
		s.quota.Expire(ctx, key, 24*time.Hour)
	}
	if n > int64(s.dailyQuota) {
		return errRateLimited(fmt.Errorf("daily quota of %d reached", s.dailyQuota))
	}
	return nil
}

// BuildCatalogContext serializes the full catalog into the Arabic text block
// embedded in the system prompt: one section per university with its city,
// founding year, description, then each faculty with its majors.
func BuildCatalogContext(catalog []*models.UniversityDetails) string {
	sections := make([]string, 0, len(catalog))
	for _, u := range catalog {
		var b strings.Builder

		fmt.Fprintf(&b, "جامعة: %s (%s)\n", u.Name, u.NameEn)
		fmt.Fprintf(&b, "  المدينة: %s\n", u.City)
		if u.Established != nil {
			fmt.Fprintf(&b, "  تأسست: %d\n", *u.Established)
		}
		if u.Description != nil && *u.Description != "" {
			fmt.Fprintf(&b, "  %s\n", *u.Description)
		}

		b.WriteString("\nالكليات والتخصصات:\n")
		for _, f := range u.Faculties {
			if f.NameEn != nil && *f.NameEn != "" {
				fmt.Fprintf(&b, "    كلية: %s (%s)\n", f.Name, *f.NameEn)
			} else {
				fmt.Fprintf(&b, "    كلية: %s\n", f.Name)
			}
			if len(f.Majors) > 0 {
				b.WriteString("    التخصصات:\n")
				for _, m := range f.Majors {
					fmt.Fprintf(&b, "      - %s\n", m.Name)
				}
			}
		}

		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n---\n\n")
}
