package service

import (
	"fmt"
	"strings"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/mail"
)

type IMailService interface {
	SendOrderConfirmation(to string, order *model.Order, items []model.OrderItemData) error
	SendShippingUpdate(to string, orderID string, status model.OrderStatus, trackingNumber string) error
	SendAppointmentConfirmation(to string, appointment *model.Appointment) error
}

type MailService struct {
	sender mail.EmailSender
}

func NewMailService(sender mail.EmailSender) *MailService {
	return &MailService{sender: sender}
}

// SendOrderConfirmation 訂單成立通知信
func (m *MailService) SendOrderConfirmation(to string, order *model.Order, items []model.OrderItemData) error {
	subject := fmt.Sprintf("訂單成立通知 %s", order.OrderID)

	var rows strings.Builder
	for _, item := range items {
		name := item.ProductName
		if name == "" {
			name = item.ProductID
		}
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>`,
			name, item.Quantity, item.Price.StringFixed(2), item.Amount.StringFixed(2)))
	}

	content := fmt.Sprintf(`
	<h1>感謝您的訂購</h1>
	<p>訂單編號：%s</p>
	<table border="1" cellpadding="4">
	  <tr><th>商品</th><th>數量</th><th>單價</th><th>小計</th></tr>
	  %s
	</table>
	<p>商品小計：%s</p>
	<p>運費：%s</p>
	<p>稅額：%s</p>
	<p><b>總金額：%s</b></p>
	<p>您可以隨時在訂單頁面查詢配送進度</p>
	`, order.OrderID, rows.String(),
		order.Subtotal.StringFixed(2),
		order.ShippingFee.StringFixed(2),
		order.Tax.StringFixed(2),
		order.Amount.StringFixed(2))

	return m.sender.SendEmail(subject, content, []string{to}, nil, nil, nil)
}

// SendShippingUpdate 訂單狀態變更通知信
func (m *MailService) SendShippingUpdate(to string, orderID string, status model.OrderStatus, trackingNumber string) error {
	subject := fmt.Sprintf("訂單狀態更新 %s", orderID)

	tracking := ""
	if trackingNumber != "" {
		tracking = fmt.Sprintf("<p>追蹤編號：%s</p>", trackingNumber)
	}

	content := fmt.Sprintf(`
	<h1>您的訂單狀態已更新</h1>
	<p>訂單編號：%s</p>
	<p>目前狀態：%s</p>
	%s
	`, orderID, status, tracking)

	return m.sender.SendEmail(subject, content, []string{to}, nil, nil, nil)
}

// SendAppointmentConfirmation 驗光預約成立通知信
func (m *MailService) SendAppointmentConfirmation(to string, appointment *model.Appointment) error {
	subject := "驗光預約確認"

	content := fmt.Sprintf(`
	<h1>您的驗光預約已成立</h1>
	<p>預約時間：%s</p>
	<p>如需改期請提前與我們聯繫</p>
	`, appointment.ScheduledAt.Format("2006-01-02 15:04"))

	return m.sender.SendEmail(subject, content, []string{to}, nil, nil, nil)
}

var _ IMailService = (*MailService)(nil)
