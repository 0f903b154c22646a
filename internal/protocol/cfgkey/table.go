package cfgkey

import w "github.com/danmuck/ubxwire/internal/protocol/wire"

var keys = []Key{
	// CFG-HW
	{0x10a3002e, "CFG_HW_ANT_CFG_VOLTCTRL", w.L},
	{0x10a3002f, "CFG_HW_ANT_CFG_SHORTDET", w.L},
	{0x10a30036, "CFG_HW_ANT_SUP_SWITCH_PIN", w.L},

	// CFG-I2C
	{0x20510001, "CFG_I2C_ADDRESS", w.U1},
	{0x10510002, "CFG_I2C_EXTENDEDTIMEOUT", w.L},
	{0x10510003, "CFG_I2C_ENABLED", w.L},
	{0x10710001, "CFG_I2CINPROT_UBX", w.L},
	{0x10710002, "CFG_I2CINPROT_NMEA", w.L},
	{0x10710004, "CFG_I2CINPROT_RTCM3X", w.L},
	{0x10720001, "CFG_I2COUTPROT_UBX", w.L},
	{0x10720002, "CFG_I2COUTPROT_NMEA", w.L},
	{0x10720004, "CFG_I2COUTPROT_RTCM3X", w.L},

	// CFG-INFMSG
	{0x20920001, "CFG_INFMSG_UBX_I2C", w.X1},
	{0x20920002, "CFG_INFMSG_UBX_UART1", w.X1},
	{0x20920003, "CFG_INFMSG_UBX_UART2", w.X1},
	{0x20920004, "CFG_INFMSG_UBX_USB", w.X1},
	{0x20920006, "CFG_INFMSG_NMEA_I2C", w.X1},
	{0x20920007, "CFG_INFMSG_NMEA_UART1", w.X1},
	{0x20920008, "CFG_INFMSG_NMEA_UART2", w.X1},
	{0x20920009, "CFG_INFMSG_NMEA_USB", w.X1},

	// CFG-MSGOUT
	{0x20910006, "CFG_MSGOUT_UBX_NAV_PVT_I2C", w.U1},
	{0x20910007, "CFG_MSGOUT_UBX_NAV_PVT_UART1", w.U1},
	{0x20910008, "CFG_MSGOUT_UBX_NAV_PVT_UART2", w.U1},
	{0x20910009, "CFG_MSGOUT_UBX_NAV_PVT_USB", w.U1},
	{0x20910015, "CFG_MSGOUT_UBX_NAV_SAT_I2C", w.U1},
	{0x20910016, "CFG_MSGOUT_UBX_NAV_SAT_UART1", w.U1},
	{0x20910018, "CFG_MSGOUT_UBX_NAV_SAT_USB", w.U1},
	{0x2091001a, "CFG_MSGOUT_UBX_NAV_STATUS_I2C", w.U1},
	{0x2091001b, "CFG_MSGOUT_UBX_NAV_STATUS_UART1", w.U1},
	{0x2091001d, "CFG_MSGOUT_UBX_NAV_STATUS_USB", w.U1},
	{0x209100ac, "CFG_MSGOUT_NMEA_ID_RMC_UART1", w.U1},
	{0x209100ae, "CFG_MSGOUT_NMEA_ID_RMC_USB", w.U1},
	{0x209100b1, "CFG_MSGOUT_NMEA_ID_VTG_UART1", w.U1},
	{0x209100bb, "CFG_MSGOUT_NMEA_ID_GGA_UART1", w.U1},
	{0x209100bd, "CFG_MSGOUT_NMEA_ID_GGA_USB", w.U1},
	{0x209100c0, "CFG_MSGOUT_NMEA_ID_GSA_UART1", w.U1},
	{0x209100c5, "CFG_MSGOUT_NMEA_ID_GSV_UART1", w.U1},
	{0x209100ca, "CFG_MSGOUT_NMEA_ID_GLL_UART1", w.U1},

	// CFG-NAVSPG
	{0x20110011, "CFG_NAVSPG_FIXMODE", w.E1},
	{0x10110013, "CFG_NAVSPG_INIFIX3D", w.L},
	{0x2011001c, "CFG_NAVSPG_UTCSTANDARD", w.E1},
	{0x20110021, "CFG_NAVSPG_DYNMODEL", w.E1},
	{0x201100a1, "CFG_NAVSPG_INFIL_MINSVS", w.U1},
	{0x201100a2, "CFG_NAVSPG_INFIL_MAXSVS", w.U1},
	{0x201100a3, "CFG_NAVSPG_INFIL_MINCNO", w.U1},
	{0x201100a4, "CFG_NAVSPG_INFIL_MINELEV", w.I1},
	{0x401100c1, "CFG_NAVSPG_CONSTR_ALT", w.I4},
	{0x401100c2, "CFG_NAVSPG_CONSTR_ALTVAR", w.U4},

	// CFG-NMEA
	{0x20930001, "CFG_NMEA_PROTVER", w.E1},
	{0x20930002, "CFG_NMEA_MAXSVS", w.E1},
	{0x10930003, "CFG_NMEA_COMPAT", w.L},
	{0x10930004, "CFG_NMEA_CONSIDER", w.L},
	{0x10930005, "CFG_NMEA_LIMIT82", w.L},
	{0x10930006, "CFG_NMEA_HIGHPREC", w.L},
	{0x20930007, "CFG_NMEA_SVNUMBERING", w.E1},
	{0x20930031, "CFG_NMEA_MAINTALKERID", w.E1},
	{0x20930032, "CFG_NMEA_GSVTALKERID", w.E1},

	// CFG-ODO
	{0x10220001, "CFG_ODO_USE_ODO", w.L},
	{0x10220002, "CFG_ODO_USE_COG", w.L},
	{0x20220005, "CFG_ODO_PROFILE", w.E1},

	// CFG-RATE
	{0x30210001, "CFG_RATE_MEAS", w.U2},
	{0x30210002, "CFG_RATE_NAV", w.U2},
	{0x20210003, "CFG_RATE_TIMEREF", w.E1},

	// CFG-RTCM
	{0x30090001, "CFG_RTCM_DF003_OUT", w.U2},

	// CFG-SBAS
	{0x10360002, "CFG_SBAS_USE_TESTMODE", w.L},
	{0x10360003, "CFG_SBAS_USE_RANGING", w.L},
	{0x10360004, "CFG_SBAS_USE_DIFFCORR", w.L},
	{0x50360006, "CFG_SBAS_PRNSCANMASK", w.X8},

	// CFG-SIGNAL
	{0x10310001, "CFG_SIGNAL_GPS_L1CA_ENA", w.L},
	{0x10310003, "CFG_SIGNAL_GPS_L2C_ENA", w.L},
	{0x10310007, "CFG_SIGNAL_GAL_E1_ENA", w.L},
	{0x1031000a, "CFG_SIGNAL_GAL_E5B_ENA", w.L},
	{0x1031000d, "CFG_SIGNAL_BDS_B1_ENA", w.L},
	{0x10310018, "CFG_SIGNAL_GLO_L1_ENA", w.L},
	{0x1031001f, "CFG_SIGNAL_GPS_ENA", w.L},
	{0x10310020, "CFG_SIGNAL_SBAS_ENA", w.L},
	{0x10310021, "CFG_SIGNAL_GAL_ENA", w.L},
	{0x10310022, "CFG_SIGNAL_BDS_ENA", w.L},
	{0x10310024, "CFG_SIGNAL_QZSS_ENA", w.L},
	{0x10310025, "CFG_SIGNAL_GLO_ENA", w.L},

	// CFG-TMODE
	{0x20030001, "CFG_TMODE_MODE", w.E1},
	{0x20030002, "CFG_TMODE_POS_TYPE", w.E1},
	{0x40030003, "CFG_TMODE_ECEF_X", w.I4},
	{0x40030004, "CFG_TMODE_ECEF_Y", w.I4},
	{0x40030005, "CFG_TMODE_ECEF_Z", w.I4},
	{0x40030010, "CFG_TMODE_SVIN_MIN_DUR", w.U4},
	{0x40030011, "CFG_TMODE_SVIN_ACC_LIMIT", w.U4},

	// CFG-TP
	{0x40050002, "CFG_TP_PERIOD_TP1", w.U4},
	{0x40050004, "CFG_TP_LEN_TP1", w.U4},
	{0x10050007, "CFG_TP_TP1_ENA", w.L},
	{0x20050023, "CFG_TP_PULSE_DEF", w.E1},
	{0x40050024, "CFG_TP_FREQ_TP1", w.U4},
	{0x5005002a, "CFG_TP_DUTY_TP1", w.R8},

	// CFG-UART1, CFG-UART2
	{0x40520001, "CFG_UART1_BAUDRATE", w.U4},
	{0x20520002, "CFG_UART1_STOPBITS", w.E1},
	{0x20520003, "CFG_UART1_DATABITS", w.E1},
	{0x20520004, "CFG_UART1_PARITY", w.E1},
	{0x10520005, "CFG_UART1_ENABLED", w.L},
	{0x10730001, "CFG_UART1INPROT_UBX", w.L},
	{0x10730002, "CFG_UART1INPROT_NMEA", w.L},
	{0x10730004, "CFG_UART1INPROT_RTCM3X", w.L},
	{0x10740001, "CFG_UART1OUTPROT_UBX", w.L},
	{0x10740002, "CFG_UART1OUTPROT_NMEA", w.L},
	{0x10740004, "CFG_UART1OUTPROT_RTCM3X", w.L},
	{0x40530001, "CFG_UART2_BAUDRATE", w.U4},
	{0x10530005, "CFG_UART2_ENABLED", w.L},

	// CFG-USB
	{0x10770001, "CFG_USBINPROT_UBX", w.L},
	{0x10770002, "CFG_USBINPROT_NMEA", w.L},
	{0x10770004, "CFG_USBINPROT_RTCM3X", w.L},
	{0x10780001, "CFG_USBOUTPROT_UBX", w.L},
	{0x10780002, "CFG_USBOUTPROT_NMEA", w.L},
}
