package youtube

import (
	"encoding/json"
	"testing"
)

const searchFixture = `{
  "contents": {
    "twoColumnSearchResultsRenderer": {
      "primaryContents": {
        "sectionListRenderer": {
          "contents": [
            {
              "itemSectionRenderer": {
                "contents": [
                  {"adSlotRenderer": {"adUnit": "ignored"}},
                  {
                    "videoRenderer": {
                      "videoId": "dQw4w9WgXcQ",
                      "title": {"runs": [{"text": "First Hit"}]},
                      "ownerText": {"runs": [{"text": "Rick"}]},
                      "lengthText": {"simpleText": "3:33"}
                    }
                  },
                  {
                    "shelfRenderer": {
                      "content": {
                        "verticalListRenderer": {
                          "items": [
                            {
                              "videoRenderer": {
                                "videoId": "abcdefghijk",
                                "title": {"runs": [{"text": "Nested Hit"}]}
                              }
                            }
                          ]
                        }
                      }
                    }
                  },
                  {"videoRenderer": {"title": {"runs": [{"text": "No Id, Dropped"}]}}}
                ]
              }
            }
          ]
        }
      }
    }
  }
}`

func TestCollectVideoRenderers(t *testing.T) {
	var payload any
	if err := json.Unmarshal([]byte(searchFixture), &payload); err != nil {
		t.Fatal(err)
	}

	var results []SearchResult
	collectVideoRenderers(payload, &results, 10)

	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2 (%+v)", len(results), results)
	}

	first := results[0]
	if first.VideoID != "dQw4w9WgXcQ" || first.Title != "First Hit" || first.Channel != "Rick" || first.Duration != "3:33" {
		t.Fatalf("first result: got %+v", first)
	}

	if results[1].VideoID != "abcdefghijk" || results[1].Title != "Nested Hit" {
		t.Fatalf("nested result: got %+v", results[1])
	}
}

func TestCollectVideoRenderersHonorsLimit(t *testing.T) {
	var payload any
	if err := json.Unmarshal([]byte(searchFixture), &payload); err != nil {
		t.Fatal(err)
	}

	var results []SearchResult
	collectVideoRenderers(payload, &results, 1)

	if len(results) != 1 {
		t.Fatalf("results with limit 1: got %d", len(results))
	}
}

func TestParseVideoRendererMissingFields(t *testing.T) {
	r, ok := parseVideoRenderer(map[string]any{"videoId": "abcdefghijk"})
	if !ok {
		t.Fatalf("renderer with id only: got ok=false")
	}
	if r.Title != "" || r.Channel != "" || r.Duration != "" {
		t.Fatalf("missing fields should be empty: got %+v", r)
	}

	if _, ok := parseVideoRenderer(map[string]any{}); ok {
		t.Fatalf("renderer without id: got ok=true")
	}
}
