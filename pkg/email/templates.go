package email

// receiptTemplate is the HTML template for receipt copy emails. The KOPIA
// banner is mandatory on every emailed rendering.
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Receipt</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Courier New', monospace; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 420px; margin: 0 auto; background-color: #ffffff; padding: 24px; border-radius: 8px;">
                    <tr>
                        <td style="text-align: center; padding-bottom: 12px;">
                            <p style="font-size: 20px; font-weight: bold; margin: 0;">*** KOPIA ***</p>
                            {{if .IsReturnReceipt}}<p style="font-size: 16px; font-weight: bold; margin: 4px 0 0 0;">RETURKVITTO</p>{{end}}
                        </td>
                    </tr>
                    <tr>
                        <td style="text-align: center; padding-bottom: 16px;">
                            <h2 style="margin: 0 0 4px 0; font-size: 18px;">{{.RestaurantName}}</h2>
                            <p style="margin: 0; font-size: 12px;">{{.Address}}</p>
                            <p style="margin: 0; font-size: 12px;">Org.nr {{.OrgNr}}</p>
                            <p style="margin: 0; font-size: 12px;">Tel {{.RestaurantPhoneNumber}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="font-size: 12px; padding-bottom: 12px; border-bottom: 1px dashed #000;">
                            <p style="margin: 0;">Kvitto nr: {{.SN}}</p>
                            <p style="margin: 0;">Kassa-ID: {{.KA}}</p>
                            <p style="margin: 0;">Datum: {{.Date.Format "2006-01-02 15:04"}}</p>
                            {{if .DiningTableName}}<p style="margin: 0;">Bord: {{.DiningTableName}}</p>{{end}}
                        </td>
                    </tr>
                    {{range .Items}}
                    <tr>
                        <td style="font-size: 12px; padding-top: 8px;">
                            <table style="width: 100%; border-collapse: collapse;">
                                <tr>
                                    <td>{{.Quantity}} x {{.Name}}</td>
                                    <td style="text-align: right;">{{.Gross}}</td>
                                </tr>
                                {{range .Variants}}
                                <tr>
                                    <td style="padding-left: 16px;">+ {{.Name}}</td>
                                    <td style="text-align: right;">{{.Price}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    {{end}}
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px; border-top: 1px dashed #000;">
                            <table style="width: 100%; border-collapse: collapse;">
                                {{range .ReceiptVat}}
                                <tr>
                                    <td>Moms {{.Rate}}%</td>
                                    <td style="text-align: right;">{{.Tax}}</td>
                                </tr>
                                {{end}}
                                <tr>
                                    <td>Avrundning</td>
                                    <td style="text-align: right;">{{.Rounding}}</td>
                                </tr>
                                <tr>
                                    <td style="font-weight: bold; font-size: 14px; padding-top: 8px;">TOTALT {{.Currency}}</td>
                                    <td style="font-weight: bold; font-size: 14px; text-align: right; padding-top: 8px;">{{.Total}}</td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px;">
                            <p style="margin: 0;">Betalsätt: {{.PaymentMethod}}</p>
                            {{if .CardNumber}}<p style="margin: 0;">{{.CardType}} {{.CardNumber}}</p>{{end}}
                        </td>
                    </tr>
                    <tr>
                        <td style="text-align: center; font-size: 12px; padding-top: 20px;">
                            <p style="margin: 0;">Tack för besöket!</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// reportTemplate is the HTML template for X and Z report emails.
const reportTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.ReportType}} Report</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Courier New', monospace; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 480px; margin: 0 auto; background-color: #ffffff; padding: 24px; border-radius: 8px;">
                    <tr>
                        <td style="text-align: center; padding-bottom: 16px;">
                            <h2 style="margin: 0 0 4px 0; font-size: 18px;">{{.ReportType}}-RAPPORT</h2>
                            <p style="margin: 0; font-size: 12px;">{{.Name}}</p>
                            <p style="margin: 0; font-size: 12px;">{{.Address}}</p>
                            <p style="margin: 0; font-size: 12px;">Org.nr {{.OrgNr}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="font-size: 12px; padding-bottom: 12px; border-bottom: 1px dashed #000;">
                            <p style="margin: 0;">Period: {{.StartDate.Format "2006-01-02 15:04"}} till {{.EndDate.Format "2006-01-02 15:04"}}</p>
                            <p style="margin: 0;">Skapad: {{.Timestamp.Format "2006-01-02 15:04"}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px;">
                            <p style="margin: 0; font-weight: bold;">Försäljning per betalsätt</p>
                            <table style="width: 100%; border-collapse: collapse;">
                                {{range .PaymentMethods}}
                                <tr>
                                    <td>{{.PaymentMethod}} ({{.Orders}} st)</td>
                                    <td style="text-align: right;">{{.Total}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px;">
                            <p style="margin: 0; font-weight: bold;">Varugrupper</p>
                            <table style="width: 100%; border-collapse: collapse;">
                                {{range .ProductGroups}}
                                <tr>
                                    <td>{{.Name}} ({{.Items}} st, {{.Vat}}%)</td>
                                    <td style="text-align: right;">{{.Total}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px;">
                            <p style="margin: 0; font-weight: bold;">Moms</p>
                            <table style="width: 100%; border-collapse: collapse;">
                                {{range .VatTotals}}
                                <tr>
                                    <td>Moms {{.Rate}}%</td>
                                    <td style="text-align: right;">{{.Tax}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    {{if .OpenOrders}}
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px;">
                            <p style="margin: 0; font-weight: bold;">Öppna notor</p>
                            <table style="width: 100%; border-collapse: collapse;">
                                {{range .OpenOrders}}
                                <tr>
                                    <td>{{.TableName}}</td>
                                    <td style="text-align: right;">{{.Total}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    {{end}}
                    <tr>
                        <td style="font-size: 12px; padding-top: 12px; border-top: 1px dashed #000;">
                            <table style="width: 100%; border-collapse: collapse;">
                                <tr>
                                    <td>Antal kvitton</td>
                                    <td style="text-align: right;">{{.TotalOrders}}</td>
                                </tr>
                                <tr>
                                    <td>Returkvitton</td>
                                    <td style="text-align: right;">{{.ReceiptsReturned}}</td>
                                </tr>
                                <tr>
                                    <td style="font-weight: bold;">Grand total försäljning</td>
                                    <td style="font-weight: bold; text-align: right;">{{.GrandTotal.Gross}}</td>
                                </tr>
                                <tr>
                                    <td style="font-weight: bold;">Grand total retur</td>
                                    <td style="font-weight: bold; text-align: right;">{{.GrandTotal.GrossReturned}}</td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
