package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// table 对齐输出，表头与各行用制表符分隔
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// idArg 解析位置参数中的正整数ID
func idArg(args []string, i int) (uint, error) {
	id, err := strconv.ParseUint(args[i], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("无效的ID: %s", args[i])
	}
	return uint(id), nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func utoa(n uint) string { return strconv.FormatUint(uint64(n), 10) }

// requireFlags 检查必填的字符串参数
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺少参数: %s", strings.Join(missing, ", "))
	}
	return nil
}
