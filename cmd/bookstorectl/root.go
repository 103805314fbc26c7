package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/events"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/pkg/logger"
)

// cli 命令之间共享的状态
// 数据库按需打开：events watch等命令不需要数据文件
type cli struct {
	configPath string
	cfg        *config.Config
	closeLog   func() error

	app *app
}

// app 管理命令用到的用例
type app struct {
	db        *gorm.DB
	publisher events.Publisher

	listBooks  *appbook.ListBooksUseCase
	addBook    *appbook.AddBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	lowStock   *appbook.LowStockUseCase
	outOfStock *appbook.OutOfStockUseCase

	register  *appuser.RegisterUseCase
	listUsers *appuser.ListUsersUseCase
	bootstrap *appuser.BootstrapUseCase

	allOrders *apporder.AllOrdersUseCase
	checkout  *apporder.CheckoutUseCase
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "bookstorectl",
		Short:         "书店管理命令行",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")

	root.AddCommand(
		c.newInitCmd(),
		c.newBooksCmd(),
		c.newUsersCmd(),
		c.newOrdersCmd(),
		c.newEventsCmd(),
	)
	return root
}

func (c *cli) loadConfig() error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// 命令输出走stdout，日志只写stderr
	c.closeLog, err = logger.Init(logger.Config{
		Level:  c.cfg.Log.Level,
		Format: "console",
		Output: "stderr",
	})
	return err
}

// open 打开数据库并组装用例（首次调用时）
func (c *cli) open() (*app, error) {
	if c.app != nil {
		return c.app, nil
	}

	db, err := gormdb.NewDB(c.cfg)
	if err != nil {
		return nil, err
	}
	publisher, err := events.NewPublisher(c.cfg)
	if err != nil {
		_ = gormdb.Close(db)
		return nil, err
	}

	bookRepo := gormdb.NewBookRepository(db)
	orderRepo := gormdb.NewOrderRepository(db)
	userRepo := gormdb.NewUserRepository(db)
	tx := gormdb.NewTxManager(db)

	var hasher user.PasswordHasher = user.NewBcryptHasher(c.cfg.Password.BcryptCost)
	if c.cfg.Password.Mode == config.PasswordModePlaintext {
		hasher = user.InsecurePlaintextHasher{}
	}

	threshold := c.cfg.Catalog.LowStockThreshold
	bookService := book.NewService(bookRepo, orderRepo, threshold)
	userService := user.NewService(userRepo, hasher)

	c.app = &app{
		db:        db,
		publisher: publisher,

		listBooks:  appbook.NewListBooksUseCase(bookService),
		addBook:    appbook.NewAddBookUseCase(bookService),
		updateBook: appbook.NewUpdateBookUseCase(bookService),
		deleteBook: appbook.NewDeleteBookUseCase(bookService, tx),
		lowStock:   appbook.NewLowStockUseCase(bookService, threshold),
		outOfStock: appbook.NewOutOfStockUseCase(bookService),

		register:  appuser.NewRegisterUseCase(userService),
		listUsers: appuser.NewListUsersUseCase(userService),
		bootstrap: appuser.NewBootstrapUseCase(userService, user.AdminSeed{
			Username: c.cfg.Account.AdminUsername,
			Email:    c.cfg.Account.AdminEmail,
			Password: c.cfg.Account.AdminPassword,
		}),

		allOrders: apporder.NewAllOrdersUseCase(orderRepo),
		checkout:  apporder.NewCheckoutUseCase(orderRepo, bookRepo, tx, publisher, threshold),
	}
	return c.app, nil
}

func (c *cli) closeApp() {
	if c.app == nil {
		return
	}
	_ = c.app.publisher.Close()
	_ = gormdb.Close(c.app.db)
	c.app = nil
}

func (c *cli) close() error {
	c.closeApp()
	if c.closeLog != nil {
		return c.closeLog()
	}
	return nil
}

// run 包装需要数据库的命令
// 命令失败时cobra不会执行PersistentPostRunE，数据库在这里关闭
func (c *cli) run(fn func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.open()
		if err != nil {
			return fmt.Errorf("打开数据库失败: %w", err)
		}
		defer c.closeApp()
		return fn(cmd.Context(), cmd, a, args)
	}
}

func (c *cli) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "创建表结构并写入默认管理员",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			created, err := a.bootstrap.Execute(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "数据库已初始化: %s\n", c.cfg.Database.Driver)
			if created {
				fmt.Fprintf(out, "已创建管理员: %s\n", c.cfg.Account.AdminUsername)
			} else {
				fmt.Fprintln(out, "管理员已存在，跳过")
			}
			return nil
		}),
	}
}
