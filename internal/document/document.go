package document

import (
	"net/url"
	"strings"
	"time"
)

var feishuDomains = []string{"feishu.cn", "larksuite.com"}

// Link is an external document attached to a project.
type Link struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	CreatedByID *string   `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l Link) GetID() string {
	return l.ID
}

// IsFeishu reports whether the link points at a Feishu / Lark document.
func (l Link) IsFeishu() bool {
	u, err := url.Parse(l.URL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range feishuDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
