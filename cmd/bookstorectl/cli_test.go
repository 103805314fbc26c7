package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb/gormdbtest"
)

type harness struct {
	t          *testing.T
	configPath string
	dbPath     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bookstore.db")
	configPath := filepath.Join(dir, "config.yaml")

	content := fmt.Sprintf(`
server:
  mode: test
database:
  path: %s
log:
  level: error
password:
  bcrypt_cost: 4
catalog:
  low_stock_threshold: 5
`, dbPath)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return &harness{t: t, configPath: configPath, dbPath: dbPath}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--config", h.configPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

// submitOrder 直接写入一个待处理订单（CLI不负责提交购物车）
func (h *harness) submitOrder(username string, bookID uint, quantity int) uint {
	h.t.Helper()
	db := gormdbtest.Open(h.t, h.dbPath)
	o, err := order.NewPendingOrder(bookID, username, quantity, time.Now())
	require.NoError(h.t, err)
	require.NoError(h.t, gormdb.NewOrderRepository(db).CreateBatch(context.Background(), []*order.Order{o}))
	require.NoError(h.t, gormdb.Close(db))
	return o.ID
}

func TestInit_Idempotent(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("init")
	assert.Contains(t, out, "已创建管理员: library")

	out = h.mustRun("init")
	assert.Contains(t, out, "管理员已存在")

	out = h.mustRun("users", "list")
	assert.Equal(t, 1, strings.Count(out, "library"))
	assert.Contains(t, out, "Admin")
}

func TestBooksCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")

	out := h.mustRun("books", "add", "--name", "Dune", "--author", "Frank Herbert", "--copies", "6")
	assert.Contains(t, out, "已上架 #1 Dune")

	t.Run("缺少参数", func(t *testing.T) {
		_, err := h.run("books", "add", "--name", "Emma")
		assert.ErrorContains(t, err, "--author")
	})

	t.Run("册数为0不能上架", func(t *testing.T) {
		_, err := h.run("books", "add", "--name", "Emma", "--author", "Jane Austen", "--copies", "0")
		assert.Error(t, err)
	})

	t.Run("修改为0册显示缺货", func(t *testing.T) {
		out := h.mustRun("books", "update", "1", "--name", "Dune", "--author", "Frank Herbert", "--copies", "0")
		assert.Contains(t, out, "Out of Stock")

		out = h.mustRun("books", "out-of-stock")
		assert.Contains(t, out, "缺货: 1本")
		assert.Contains(t, out, "Dune")
	})

	t.Run("低库存报表", func(t *testing.T) {
		h.mustRun("books", "add", "--name", "Emma", "--author", "Jane Austen", "--copies", "3")
		out := h.mustRun("books", "low-stock", "--threshold", "3")
		assert.Contains(t, out, "阈值3")
		assert.Contains(t, out, "Emma")
	})

	t.Run("非法ID", func(t *testing.T) {
		_, err := h.run("books", "delete", "abc")
		assert.ErrorContains(t, err, "无效的ID")
	})

	t.Run("删除", func(t *testing.T) {
		h.mustRun("books", "delete", "1")
		out := h.mustRun("books", "list")
		assert.NotContains(t, out, "Dune")
	})
}

func TestUsersRegister(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")

	out := h.mustRun("users", "register", "--username", "alice", "--email", "alice@example.com", "--password", "pw")
	assert.Contains(t, out, "alice")

	_, err := h.run("users", "register", "--username", "alice", "--email", "a2@example.com", "--password", "pw")
	assert.ErrorContains(t, err, "用户名已存在")

	_, err = h.run("users", "register", "--username", "bob", "--email", "bob-at-example", "--password", "pw")
	assert.Error(t, err)
}

func TestReadPassword_NonTerminal(t *testing.T) {
	var prompt bytes.Buffer
	pw, err := readPassword(strings.NewReader("secret\n"), &prompt)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Empty(t, prompt.String())
}

func TestOrdersCheckout(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")
	h.mustRun("users", "register", "--username", "alice", "--email", "alice@example.com", "--password", "pw")
	h.mustRun("books", "add", "--name", "Dune", "--author", "Frank Herbert", "--copies", "6")

	orderID := h.submitOrder("alice", 1, 2)

	out := h.mustRun("orders", "list", "--status", "Pending")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Dune")

	_, err := h.run("books", "delete", "1")
	assert.ErrorContains(t, err, "待处理订单")

	out = h.mustRun("orders", "checkout", fmt.Sprint(orderID))
	assert.Contains(t, out, "剩余 4 册")
	assert.Contains(t, out, "库存预警")

	_, err = h.run("orders", "checkout", fmt.Sprint(orderID))
	assert.Error(t, err)

	out = h.mustRun("orders", "list", "--status", "Completed")
	assert.Contains(t, out, "Completed")

	_, err = h.run("orders", "list", "--status", "Shipped")
	assert.Error(t, err)
}

func TestEventsWatch_Disabled(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("events", "watch")
	assert.ErrorContains(t, err, "events.enabled=false")
}
