package ports

import "strconv"

// Service returns a short service name for a destination port.
// Empty ports return "na" and ports without a well known name return "unknown".
func Service(port string) string {
	if port == "" {
		return "na"
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return "unknown"
	}

	switch p {
	case 20, 21:
		return "ftp"
	case 22:
		return "ssh"
	case 23:
		return "telnet"
	case 25, 465, 587:
		return "smtp"
	case 53:
		return "dns"
	case 80, 8000, 8080:
		return "http"
	case 123:
		return "ntp"
	case 161, 162:
		return "snmp"
	case 389:
		return "ldap"
	case 443, 8443:
		return "https"
	case 445:
		return "smb"
	case 514:
		return "syslog"
	case 636:
		return "ldaps"
	case 1433:
		return "mssql"
	case 1521:
		return "oracle"
	case 3306:
		return "mysql"
	case 3389:
		return "rdp"
	case 4789:
		return "vxlan"
	case 5060, 5061:
		return "sip"
	case 5432:
		return "postgres"
	case 6379:
		return "redis"
	}

	return "unknown"
}
