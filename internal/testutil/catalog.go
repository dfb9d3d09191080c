package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeCatalog 模拟外部商品目录：未知 id 返回 200 + 空 body
type FakeCatalog struct {
	*httptest.Server
	mu       sync.Mutex
	products map[int64]string
	calls    map[int64]int
}

func ProductJSON(id int64, title string, price float64) string {
	return fmt.Sprintf(`{"id":%d,"title":%q,"price":%v,"description":"d","category":"c","image":"https://img/%d.jpg","rating":{"rate":4.5,"count":%d}}`,
		id, title, price, id, 100+id)
}

func NewFakeCatalog(t testing.TB, ids ...int64) *FakeCatalog {
	t.Helper()
	fc := &FakeCatalog{products: map[int64]string{}, calls: map[int64]int{}}
	for _, id := range ids {
		fc.products[id] = ProductJSON(id, "Product "+strconv.FormatInt(id, 10), float64(id)*10+0.5)
	}
	fc.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/products/"), 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		fc.mu.Lock()
		fc.calls[id]++
		body, ok := fc.products[id]
		fc.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if ok {
			_, _ = w.Write([]byte(body))
		}
	}))
	t.Cleanup(fc.Close)
	return fc
}

func (fc *FakeCatalog) BaseURL() string { return fc.URL + "/products" }

func (fc *FakeCatalog) Set(id int64, body string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.products[id] = body
}

func (fc *FakeCatalog) Calls(id int64) int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.calls[id]
}
