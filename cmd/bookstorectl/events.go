package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

func (c *cli) newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "领域事件",
	}
	cmd.AddCommand(c.newEventsWatchCmd())
	return cmd
}

// newEventsWatchCmd 订阅交换机并逐条打印，Ctrl+C退出
func (c *cli) newEventsWatchCmd() *cobra.Command {
	var keys []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "打印订单与库存事件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.cfg.Events.Enabled {
				return fmt.Errorf("events.enabled=false，服务不会发布事件")
			}

			consumer, err := mq.NewConsumer(c.cfg.Events.URL, c.cfg.Events.Exchange, c.cfg.Events.ExchangeType, "", keys)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return consumer.Consume(ctx, func(msg mq.Message) error {
				fmt.Fprintf(out, "%s  %-16s  %s\n", msg.Timestamp.Local().Format(time.DateTime), msg.RoutingKey, msg.Body)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&keys, "key", []string{"order.*", "book.#"}, "绑定的routing key，可重复")
	return cmd
}
