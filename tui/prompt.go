package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qianlnk/wolfgrid/models"
)

// ErrNoInput 输入在回答前结束
var ErrNoInput = errors.New("saisie interrompue")

var roleAliases = map[string]models.Role{
	"l":          models.Wolf,
	"loup":       models.Wolf,
	"v":          models.Villager,
	"villageois": models.Villager,
}

// PromptIdentity 在进入全屏界面之前询问登录名与阵营。
// 登录名原样返回，由注册协议校验；阵营输入无效时重复询问。
func PromptIdentity(in io.Reader, out io.Writer) (string, models.Role, error) {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "Login : ")
	if !scanner.Scan() {
		return "", models.RoleUnknown, inputErr(scanner)
	}
	login := strings.TrimSpace(scanner.Text())

	for {
		fmt.Fprint(out, "Rôle (loup/villageois) : ")
		if !scanner.Scan() {
			return "", models.RoleUnknown, inputErr(scanner)
		}
		if role, ok := roleAliases[strings.ToLower(strings.TrimSpace(scanner.Text()))]; ok {
			return login, role, nil
		}
		fmt.Fprintln(out, "Rôle inconnu, tapez loup ou villageois.")
	}
}

func inputErr(scanner *bufio.Scanner) error {
	if err := scanner.Err(); err != nil {
		return err
	}
	return ErrNoInput
}
