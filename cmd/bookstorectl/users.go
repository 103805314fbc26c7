package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
)

func (c *cli) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "账户管理",
	}
	cmd.AddCommand(c.newUsersListCmd(), c.newUsersRegisterCmd())
	return cmd
}

func (c *cli) newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部用户",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			users, err := a.listUsers.Execute(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{utoa(u.ID), u.Username, u.Email, u.Role})
			}
			return table(cmd.OutOrStdout(), []string{"ID", "USERNAME", "EMAIL", "ROLE"}, rows)
		}),
	}
}

func (c *cli) newUsersRegisterCmd() *cobra.Command {
	var req appuser.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "注册普通用户",
		Long:  "未指定--password时从终端读取（不回显）；标准输入不是终端时读取一行",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			if err := requireFlags(cmd, "username", "email"); err != nil {
				return err
			}
			if req.Password == "" {
				pw, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				req.Password = pw
			}

			info, err := a.register.Execute(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已注册 #%d %s\n", info.ID, info.Username)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "用户名（区分大小写）")
	cmd.Flags().StringVar(&req.Email, "email", "", "邮箱")
	cmd.Flags().StringVar(&req.Password, "password", "", "密码（不建议在命令行中明文传入）")
	return cmd
}

// readPassword 终端下不回显读取密码
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("读取密码失败: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	return strings.TrimSpace(line), nil
}
