package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestArticleUUIDIsStable(t *testing.T) {
	first := ArticleUUID("getting-started-with-nextjs")
	second := ArticleUUID(" getting-started-with-nextjs ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil id")
	}
	if first != second {
		t.Fatalf("expected stable id, got %s and %s", first, second)
	}
	if ArticleUUID("other-post") == first {
		t.Fatalf("expected distinct slugs to map to distinct ids")
	}
}

func TestArticleUUIDEmpty(t *testing.T) {
	if ArticleUUID("   ") != uuid.Nil {
		t.Fatalf("expected nil id for blank slug")
	}
}

func TestArticleUUIDIsCaseSensitive(t *testing.T) {
	if ArticleUUID("Hello") == ArticleUUID("hello") {
		t.Fatalf("expected slugs differing in case to map to distinct ids")
	}
}
