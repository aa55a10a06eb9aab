package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/angelmondragon/sallaty-client/internal/app"
	"github.com/angelmondragon/sallaty-client/internal/gateway"
	"github.com/angelmondragon/sallaty-client/internal/nav"
	"github.com/angelmondragon/sallaty-client/internal/shortages"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/enums"
)

// terminal renders one screen per prompt cycle and maps typed commands
// onto application operations. Visual styling is out of scope; every
// screen is plain text.
type terminal struct {
	app     *app.App
	gw      *gateway.Client
	scanner *bufio.Scanner
	out     io.Writer
}

func newTerminal(application *app.App, gw *gateway.Client, in io.Reader, out io.Writer) *terminal {
	return &terminal{
		app:     application,
		gw:      gw,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run drives the prompt loop until EOF, "exit", or context cancel.
func (t *terminal) Run(ctx context.Context) error {
	t.app.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			t.teardown()
			return nil
		default:
		}

		t.render()
		line, ok := t.readLine()
		if !ok || line == "exit" {
			t.teardown()
			return t.scanner.Err()
		}
		t.dispatch(ctx, line)
	}
}

func (t *terminal) teardown() {
	if t.app.Current() == nav.ScreenMain {
		t.app.Main.Leave()
	}
}

func (t *terminal) readLine() (string, bool) {
	if !t.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.scanner.Text()), true
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *terminal) render() {
	switch t.app.Current() {
	case nav.ScreenLogin:
		t.printf("\n== تسجيل الدخول ==")
		t.printf("login <اسم المتجر> <كلمة المرور> | register <اسم المتجر> <كلمة المرور> | exit")
	case nav.ScreenMain:
		store := t.app.Store()
		name := ""
		if store != nil {
			name = store.Username
		}
		t.printf("\n== %s ==", name)
		if unread := t.app.Main.UnreadCount(); unread > 0 {
			t.printf("إشعارات غير مقروءة: %d", unread)
		}
		t.printf("add | list | notifications | logout | exit")
	case nav.ScreenAddShortage:
		t.printf("\n== الإبلاغ عن نقص ==")
		t.printf("الوحدات: %s", unitList())
		t.printf("submit <المنتج> <الكمية> <الوحدة> [ملاحظات] | back")
	case nav.ScreenShortageList:
		t.renderList()
	case nav.ScreenNotifications:
		t.renderNotifications()
	}
	fmt.Fprint(t.out, "> ")
}

func (t *terminal) renderList() {
	t.printf("\n== قائمة النواقص (%s) ==", t.app.List.Filter())
	if errText := t.app.List.ErrText(); errText != "" {
		t.printf("خطأ: %s", errText)
	}
	visible := t.app.List.Visible()
	if len(visible) == 0 {
		t.printf("لا توجد نواقص")
	}
	for _, s := range visible {
		line := fmt.Sprintf("[%d] %s - %s %s - %s - %s",
			s.ID, s.ProductName, s.Quantity.String(), s.Unit, s.StoreName, shortages.StatusText(s))
		if t.app.List.CanRespond(s) {
			line += " (يمكن الرد)"
		}
		t.printf("%s", line)
	}
	if target := t.app.List.Workflow.Target(); target != nil {
		t.printf("الرد على [%d] %s: send <الرسالة> | cancel", target.ID, target.ProductName)
		return
	}
	t.printf("filter <all|my_shortages|responded_by_me> | search <كلمة> | respond <رقم> | back")
}

func (t *terminal) renderNotifications() {
	t.printf("\n== الإشعارات ==")
	if errText := t.app.Notifs.ErrText(); errText != "" {
		t.printf("خطأ: %s", errText)
	}
	items := t.app.Notifs.Items()
	if len(items) == 0 {
		t.printf("لا توجد إشعارات")
	}
	for _, n := range items {
		marker := "*"
		if n.IsRead {
			marker = " "
		}
		t.printf("[%d]%s %s", n.ID, marker, n.Message)
	}
	t.printf("read <رقم> | back")
}

func (t *terminal) dispatch(ctx context.Context, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch t.app.Current() {
	case nav.ScreenLogin:
		t.dispatchLogin(ctx, cmd, rest)
	case nav.ScreenMain:
		t.dispatchMain(ctx, cmd)
	case nav.ScreenAddShortage:
		t.dispatchAdd(ctx, cmd, rest)
	case nav.ScreenShortageList:
		t.dispatchList(ctx, cmd, rest)
	case nav.ScreenNotifications:
		t.dispatchNotifications(ctx, cmd, rest)
	}
}

func (t *terminal) dispatchLogin(ctx context.Context, cmd, rest string) {
	username, password, _ := strings.Cut(rest, " ")
	switch cmd {
	case "login":
		outcome := t.app.Login(ctx, username, strings.TrimSpace(password))
		if !outcome.Success {
			t.printf("%s", outcome.Message)
		}
	case "register":
		result, err := t.gw.Register(ctx, gateway.RegisterRequest{
			Username: username,
			Password: strings.TrimSpace(password),
		})
		if err != nil {
			t.printf("%s", pkgerrors.UserMessage(err))
			return
		}
		if result.Message != "" {
			t.printf("%s", result.Message)
		}
		if result.Success {
			t.printf("تم إنشاء الحساب، يمكنك تسجيل الدخول الآن")
		}
	}
}

func (t *terminal) dispatchMain(ctx context.Context, cmd string) {
	switch cmd {
	case "add":
		t.app.NavigateTo(ctx, nav.ScreenAddShortage)
	case "list":
		t.app.NavigateTo(ctx, nav.ScreenShortageList)
	case "notifications":
		t.app.NavigateTo(ctx, nav.ScreenNotifications)
	case "logout":
		t.app.Logout(ctx)
	}
}

func (t *terminal) dispatchAdd(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "back":
		t.app.Back(ctx)
	case "submit":
		fields := strings.Fields(rest)
		if len(fields) < 3 {
			t.printf("الصيغة: submit <المنتج> <الكمية> <الوحدة> [ملاحظات]")
			return
		}
		t.app.Add.Input = shortages.CreateInput{
			ProductName: fields[0],
			Quantity:    fields[1],
			Unit:        fields[2],
			Notes:       strings.Join(fields[3:], " "),
		}
		created, err := t.app.Add.Submit(ctx)
		if err != nil {
			t.printf("%s", pkgerrors.UserMessage(err))
			return
		}
		t.printf("تم الإبلاغ عن النقص: %s", created.ProductName)
	}
}

func (t *terminal) dispatchList(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "back":
		t.app.Back(ctx)
	case "filter":
		filter, err := shortages.ParseFilter(rest)
		if err != nil {
			t.printf("%s", pkgerrors.UserMessage(err))
			return
		}
		if err := t.app.List.SetFilter(ctx, filter); err != nil {
			t.printf("%s", pkgerrors.UserMessage(err))
		}
	case "search":
		t.app.List.SetSearch(rest)
	case "respond":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			t.printf("الصيغة: respond <رقم>")
			return
		}
		for _, s := range t.app.List.Visible() {
			if s.ID == id && t.app.List.CanRespond(s) {
				t.app.List.Workflow.Open(s)
				return
			}
		}
		t.printf("لا يمكن الرد على هذا النقص")
	case "send":
		t.app.List.Workflow.SetDraft(rest)
		if err := t.app.List.SubmitResponse(ctx); err != nil {
			t.printf("%s", pkgerrors.UserMessage(err))
			return
		}
		t.printf("%s", shortages.SuccessAck)
	case "cancel":
		t.app.List.Workflow.Close()
	}
}

func (t *terminal) dispatchNotifications(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "back":
		t.app.Back(ctx)
	case "read":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			t.printf("الصيغة: read <رقم>")
			return
		}
		if err := t.app.Notifs.MarkRead(ctx, id); err != nil {
			t.printf("%s", pkgerrors.UserMessage(err))
		}
	}
}

func unitList() string {
	units := enums.Units()
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, string(u))
	}
	return strings.Join(parts, "، ")
}
