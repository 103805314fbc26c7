package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
)

func (c *cli) newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "图书目录管理",
	}
	cmd.AddCommand(
		c.newBooksListCmd(),
		c.newBooksAddCmd(),
		c.newBooksUpdateCmd(),
		c.newBooksDeleteCmd(),
		c.newBooksLowStockCmd(),
		c.newBooksOutOfStockCmd(),
	)
	return cmd
}

func printBooks(cmd *cobra.Command, books []appbook.BookView) error {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{utoa(b.ID), b.Name, b.Author, b.Availability})
	}
	return table(cmd.OutOrStdout(), []string{"ID", "NAME", "AUTHOR", "COPIES"}, rows)
}

func (c *cli) newBooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部图书",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			books, err := a.listBooks.Execute(ctx)
			if err != nil {
				return err
			}
			return printBooks(cmd, books)
		}),
	}
}

func (c *cli) newBooksAddCmd() *cobra.Command {
	var req appbook.AddBookRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "上架图书",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			if err := requireFlags(cmd, "name", "author", "copies"); err != nil {
				return err
			}
			b, err := a.addBook.Execute(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已上架 #%d %s（%d册）\n", b.ID, b.Name, b.Copies)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "书名")
	cmd.Flags().StringVar(&req.Author, "author", "", "作者")
	cmd.Flags().IntVar(&req.Copies, "copies", 0, "册数（至少为1）")
	return cmd
}

func (c *cli) newBooksUpdateCmd() *cobra.Command {
	var req appbook.UpdateBookRequest

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "覆盖书名、作者、册数",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			id, err := idArg(args, 0)
			if err != nil {
				return err
			}
			if err := requireFlags(cmd, "name", "author", "copies"); err != nil {
				return err
			}
			req.ID = id

			b, err := a.updateBook.Execute(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已修改 #%d %s（%s）\n", b.ID, b.Name, b.Availability)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "书名")
	cmd.Flags().StringVar(&req.Author, "author", "", "作者")
	cmd.Flags().IntVar(&req.Copies, "copies", 0, "册数（可以为0）")
	return cmd
}

func (c *cli) newBooksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "删除图书（仍有待处理订单时拒绝）",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			id, err := idArg(args, 0)
			if err != nil {
				return err
			}
			if err := a.deleteBook.Execute(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已删除 #%d\n", id)
			return nil
		}),
	}
}

func (c *cli) newBooksLowStockCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "低库存报表",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			report, err := a.lowStock.Execute(ctx, threshold)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "库存预警: %d本（阈值%d）\n", report.AlertCount, report.Threshold)
			return printBooks(cmd, report.Books)
		}),
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "阈值，缺省使用配置 catalog.low_stock_threshold")
	return cmd
}

func (c *cli) newBooksOutOfStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "out-of-stock",
		Short: "缺货报表",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			report, err := a.outOfStock.Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "缺货: %d本\n", report.AlertCount)
			return printBooks(cmd, report.Books)
		}),
	}
}
