package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *cli) newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "订单管理",
	}
	cmd.AddCommand(c.newOrdersListCmd(), c.newOrdersCheckoutCmd())
	return cmd
}

func (c *cli) newOrdersListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出订单（最新在前）",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			orders, err := a.allOrders.Execute(ctx, status)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{
					utoa(o.OrderID),
					o.Username,
					o.BookName,
					itoa(o.Quantity),
					string(o.Status),
					o.OrderTime.Local().Format(time.DateTime),
				})
			}
			return table(cmd.OutOrStdout(), []string{"ID", "USER", "BOOK", "QTY", "STATUS", "ORDER TIME"}, rows)
		}),
	}
	cmd.Flags().StringVar(&status, "status", "", "按状态过滤：Pending 或 Completed")
	return cmd
}

func (c *cli) newOrdersCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <order-id>",
		Short: "结账：扣减库存并完成订单",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			id, err := idArg(args, 0)
			if err != nil {
				return err
			}
			resp, err := a.checkout.Execute(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "订单 #%d 已完成：%s × %d，剩余 %d 册\n", resp.OrderID, resp.Username, resp.Quantity, resp.RemainingCopies)
			if resp.LowStock {
				fmt.Fprintf(out, "库存预警：图书 #%d 剩余 %d 册，请及时补货\n", resp.BookID, resp.RemainingCopies)
			}
			return nil
		}),
	}
}
