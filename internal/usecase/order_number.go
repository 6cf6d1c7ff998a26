package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const orderNumberSuffixLen = 5

var base36 = []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// NewOrderNumberは「ORD-<unixミリ秒>-<英数5桁>」を生成する。
// 実用上ユニーク。最終的にはorder_numberのunique indexが防波堤。
func NewOrderNumber(now time.Time) string {
	var sb strings.Builder
	for i := 0; i < orderNumberSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			// crypto/randが死ぬ環境は想定しない
			panic(err)
		}
		sb.WriteRune(base36[n.Int64()])
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), sb.String())
}
