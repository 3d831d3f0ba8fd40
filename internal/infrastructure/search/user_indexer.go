package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/account-service/internal/domain/entity"
)

// UserDocument is the searchable projection of a user. Credentials,
// contact details and confirmation secrets never leave the store.
type UserDocument struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Timezone  string `json:"timezone"`
	ISOCode   string `json:"iso_code"`
	Confirmed bool   `json:"confirmed"`
	CreatedAt string `json:"created_at"`
}

func NewUserDocument(u *entity.User) UserDocument {
	return UserDocument{
		ID:        u.ID,
		Name:      u.Name,
		Role:      string(u.Role),
		Timezone:  u.Timezone,
		ISOCode:   u.PhoneNumber.ISOCode,
		Confirmed: u.AccountConfirmation.Status,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type UserIndexer struct {
	ES      *elasticsearch.Client
	Index   string
	Timeout time.Duration
}

func NewUserIndexer(es *elasticsearch.Client, index string) *UserIndexer {
	return &UserIndexer{ES: es, Index: index, Timeout: 3 * time.Second}
}

// IndexUser upserts the user's document keyed by ID.
func (x *UserIndexer) IndexUser(ctx context.Context, u *entity.User) error {
	if x == nil || x.ES == nil || x.Index == "" {
		return nil
	}
	b, err := json.Marshal(NewUserDocument(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	if x.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.Timeout)
		defer cancel()
	}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}
