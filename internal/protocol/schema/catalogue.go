package schema

import (
	"fmt"

	w "github.com/danmuck/ubxwire/internal/protocol/wire"
)

// Output (GET) layouts: unsolicited or polled receiver output.
var getPayloads = map[string]Payload{
	"ACK-ACK": Layout(S("clsID", w.U1), S("msgID", w.U1)),
	"ACK-NAK": Layout(S("clsID", w.U1), S("msgID", w.U1)),

	"CFG-GNSS": Layout(
		S("msgVer", w.U1),
		S("numTrkChHw", w.U1),
		S("numTrkChUse", w.U1),
		S("numConfigBlocks", w.U1),
		E("group", Group(Ref("numConfigBlocks"),
			S("gnssId", w.U1),
			S("resTrkCh", w.U1),
			S("maxTrkCh", w.U1),
			S("reserved1", w.U1),
			E("flags", Bitfield(w.X4, B("enable", 1), B("reserved2", 15), B("sigCfMask", 8))),
		)),
	),
	"CFG-MSG": Layout(
		S("msgClass", w.U1),
		S("msgID", w.U1),
		S("rateDDC", w.U1),
		S("rateUART1", w.U1),
		S("rateUART2", w.U1),
		S("rateUSB", w.U1),
		S("rateSPI", w.U1),
		S("reserved", w.U1),
	),
	"CFG-NAV5": Layout(
		E("mask", Bitfield(w.X2,
			B("dyn", 1), B("minEl", 1), B("posFixMode", 1), B("drLim", 1),
			B("posMask", 1), B("timeMask", 1), B("staticHoldMask", 1), B("dgpsMask", 1),
			B("cnoThreshold", 1), B("reserved0", 1), B("utc", 1),
		)),
		S("dynModel", w.E1),
		S("fixMode", w.E1),
		E("fixedAlt", Scaled(w.I4, w.Scale2)),
		E("fixedAltVar", Scaled(w.U4, w.Scale4)),
		S("minElev", w.I1),
		S("drLimit", w.U1),
		E("pDop", Scaled(w.U2, w.Scale1)),
		E("tDop", Scaled(w.U2, w.Scale1)),
		S("pAcc", w.U2),
		S("tAcc", w.U2),
		S("staticHoldThresh", w.U1),
		S("dgnssTimeout", w.U1),
		S("cnoThreshNumSVs", w.U1),
		S("cnoThresh", w.U1),
		S("reserved1", w.U2),
		S("staticHoldMaxDist", w.U2),
		S("utcStandard", w.E1),
		S("reserved2", w.U5),
	),
	"CFG-PRT": Layout(
		S("portID", w.U1),
		S("reserved0", w.U1),
		E("txReady", Bitfield(w.X2, B("en", 1), B("pol", 1), B("pin", 5), B("thres", 9))),
		E("mode", Bitfield(w.X4,
			B("reserved1", 6), B("charLen", 2), B("reserved2", 1), B("parity", 3), B("nStopBits", 2),
		)),
		S("baudRate", w.U4),
		E("inProtoMask", Bitfield(w.X2, B("inUBX", 1), B("inNMEA", 1), B("inRTCM", 1), B("reserved3", 2), B("inRTCM3", 1))),
		E("outProtoMask", Bitfield(w.X2, B("outUBX", 1), B("outNMEA", 1), B("reserved4", 3), B("outRTCM3", 1))),
		E("flags", Bitfield(w.X2, B("reserved5", 1), B("extendedTxTimeout", 1))),
		S("reserved6", w.U2),
	),
	"CFG-RATE": Layout(S("measRate", w.U2), S("navRate", w.U2), S("timeRef", w.U2)),
	"CFG-TP5": Layout(
		S("tpIdx", w.U1),
		S("version", w.U1),
		S("reserved0", w.U2),
		S("antCableDelay", w.I2),
		S("rfGroupDelay", w.I2),
		S("freqPeriod", w.U4),
		S("freqPeriodLock", w.U4),
		S("pulseLenRatio", w.U4),
		S("pulseLenRatioLock", w.U4),
		S("userConfigDelay", w.I4),
		E("flags", Bitfield(w.X4,
			B("active", 1), B("lockGnssFreq", 1), B("lockedOtherSet", 1), B("isFreq", 1),
			B("isLength", 1), B("alignToTow", 1), B("polarity", 1), B("gridUtcGnss", 4), B("syncMode", 3),
		)),
	),
	"CFG-VALGET": Layout(
		S("version", w.U1),
		S("layer", w.U1),
		S("position", w.U2),
		E("group", Group(Remaining, S("cfgData", w.U1))),
	),

	"ESF-MEAS": Layout(
		S("timeTag", w.U4),
		E("flags", Bitfield(w.X2,
			B("timeMarkSent", 2), B("timeMarkEdge", 1), B("calibTtagValid", 1), B("reserved0", 7), B("numMeas", 5),
		)),
		S("id", w.U2),
		E("group", Group(Ref("numMeas"),
			E("data", Bitfield(w.X4, B("dataField", 24), B("dataType", 6))),
		)),
	),
	"ESF-STATUS": Layout(
		S("iTOW", w.U4),
		S("version", w.U1),
		S("reserved0", w.U7),
		S("fusionMode", w.U1),
		S("reserved1", w.U2),
		S("numSens", w.U1),
		E("group", Group(Ref("numSens"),
			E("sensStatus1", Bitfield(w.X1, B("type", 6), B("used", 1), B("ready", 1))),
			E("sensStatus2", Bitfield(w.X1, B("calibStatus", 2), B("timeStatus", 2))),
			S("freq", w.U1),
			E("faults", Bitfield(w.X1, B("badMeas", 1), B("badTTag", 1), B("missingMeas", 1), B("noisyMeas", 1))),
		)),
	),

	"INF-DEBUG":   infLayout,
	"INF-ERROR":   infLayout,
	"INF-NOTICE":  infLayout,
	"INF-TEST":    infLayout,
	"INF-WARNING": infLayout,

	"LOG-FINDTIME": Layout(
		S("version", w.U1),
		S("type", w.U1),
		S("reserved0", w.U2),
		S("entryNumber", w.U4),
	),

	"MGA-DBD": Layout(
		S("reserved1", w.U12),
		E("group", Group(Remaining, S("dbData", w.U1))),
	),

	"MON-IO": Layout(
		E("group", Group(Remaining,
			S("rxBytes", w.U4),
			S("txBytes", w.U4),
			S("parityErrs", w.U2),
			S("framingErrs", w.U2),
			S("overrunErrs", w.U2),
			S("breakCond", w.U2),
			S("rxBusy", w.U1),
			S("txBusy", w.U1),
			S("reserved1", w.U2),
		)),
	),
	"MON-VER": Layout(
		S("swVersion", w.C(30)),
		S("hwVersion", w.C(10)),
		E("group", Group(Remaining, S("extension", w.C(30)))),
	),

	"NAV-CLOCK": Layout(
		S("iTOW", w.U4),
		S("clkB", w.I4),
		S("clkD", w.I4),
		S("tAcc", w.U4),
		S("fAcc", w.U4),
	),
	"NAV-DOP": Layout(
		S("iTOW", w.U4),
		E("gDOP", Scaled(w.U2, w.Scale2)),
		E("pDOP", Scaled(w.U2, w.Scale2)),
		E("tDOP", Scaled(w.U2, w.Scale2)),
		E("vDOP", Scaled(w.U2, w.Scale2)),
		E("hDOP", Scaled(w.U2, w.Scale2)),
		E("nDOP", Scaled(w.U2, w.Scale2)),
		E("eDOP", Scaled(w.U2, w.Scale2)),
	),
	"NAV-EOE": Layout(S("iTOW", w.U4)),
	"NAV-ODO": Layout(
		S("version", w.U1),
		S("reserved0", w.U3),
		S("iTOW", w.U4),
		S("distance", w.U4),
		S("totalDistance", w.U4),
		S("distanceStd", w.U4),
	),
	"NAV-POSECEF": Layout(
		S("iTOW", w.U4),
		S("ecefX", w.I4),
		S("ecefY", w.I4),
		S("ecefZ", w.I4),
		S("pAcc", w.U4),
	),
	"NAV-POSLLH": Layout(
		S("iTOW", w.U4),
		E("lon", Scaled(w.I4, w.Scale7)),
		E("lat", Scaled(w.I4, w.Scale7)),
		S("height", w.I4),
		S("hMSL", w.I4),
		S("hAcc", w.U4),
		S("vAcc", w.U4),
	),
	"NAV-PVT": Layout(
		S("iTOW", w.U4),
		S("year", w.U2),
		S("month", w.U1),
		S("day", w.U1),
		S("hour", w.U1),
		S("min", w.U1),
		S("second", w.U1),
		E("valid", Bitfield(w.X1, B("validDate", 1), B("validTime", 1), B("fullyResolved", 1), B("validMag", 1))),
		S("tAcc", w.U4),
		S("nano", w.I4),
		S("fixType", w.U1),
		E("flags", Bitfield(w.X1,
			B("gnssFixOk", 1), B("difSoln", 1), B("psmState", 3), B("headVehValid", 1), B("carrSoln", 2),
		)),
		E("flags2", Bitfield(w.X1, B("reserved", 5), B("confirmedAvai", 1), B("confirmedDate", 1), B("confirmedTime", 1))),
		S("numSV", w.U1),
		E("lon", Scaled(w.I4, w.Scale7)),
		E("lat", Scaled(w.I4, w.Scale7)),
		S("height", w.I4),
		S("hMSL", w.I4),
		S("hAcc", w.U4),
		S("vAcc", w.U4),
		S("velN", w.I4),
		S("velE", w.I4),
		S("velD", w.I4),
		S("gSpeed", w.I4),
		E("headMot", Scaled(w.I4, w.Scale5)),
		S("sAcc", w.U4),
		E("headAcc", Scaled(w.U4, w.Scale5)),
		E("pDOP", Scaled(w.U2, w.Scale2)),
		E("flags3", Bitfield(w.X2, B("invalidLlh", 1), B("lastCorrectionAge", 4))),
		S("reserved0", w.U4),
		E("headVeh", Scaled(w.I4, w.Scale5)),
		E("magDec", Scaled(w.I2, w.Scale2)),
		E("magAcc", Scaled(w.U2, w.Scale2)),
	),
	"NAV-SAT": Layout(
		S("iTOW", w.U4),
		S("version", w.U1),
		S("numSvs", w.U1),
		S("reserved0", w.U2),
		E("group", Group(Ref("numSvs"),
			S("gnssId", w.U1),
			S("svId", w.U1),
			S("cno", w.U1),
			S("elev", w.I1),
			S("azim", w.I2),
			E("prRes", Scaled(w.I2, w.Scale1)),
			E("flags", Bitfield(w.X4,
				B("qualityInd", 3), B("svUsed", 1), B("health", 2), B("diffCorr", 1), B("smoothed", 1),
				B("orbitSource", 3), B("ephAvail", 1), B("almAvail", 1), B("anoAvail", 1), B("aopAvail", 1),
				B("reserved13", 1), B("sbasCorrUsed", 1), B("rtcmCorrUsed", 1), B("slasCorrUsed", 1),
				B("spartnCorrUsed", 1), B("prCorrUsed", 1), B("crCorrUsed", 1), B("doCorrUsed", 1),
			)),
		)),
	),
	"NAV-STATUS": Layout(
		S("iTOW", w.U4),
		S("gpsFix", w.U1),
		E("flags", Bitfield(w.X1, B("gpsFixOk", 1), B("diffSoln", 1), B("wknSet", 1), B("towSet", 1))),
		E("fixStat", Bitfield(w.X1, B("diffCorr", 1), B("carrSolnValid", 1), B("reserved0", 4), B("mapMatching", 2))),
		E("flags2", Bitfield(w.X1,
			B("psmState", 2), B("reserved1", 1), B("spoofDetState", 2), B("reserved2", 1), B("carrSoln", 2),
		)),
		S("ttff", w.U4),
		S("msss", w.U4),
	),
	"NAV-TIMEGPS": Layout(
		S("iTOW", w.U4),
		S("fTOW", w.I4),
		S("week", w.I2),
		S("leapS", w.I1),
		E("valid", Bitfield(w.X1, B("towValid", 1), B("weekValid", 1), B("leapSValid", 1))),
		S("tAcc", w.U4),
	),
	"NAV-TIMEUTC": Layout(
		S("iTOW", w.U4),
		S("tAcc", w.U4),
		S("nano", w.I4),
		S("year", w.U2),
		S("month", w.U1),
		S("day", w.U1),
		S("hour", w.U1),
		S("min", w.U1),
		S("sec", w.U1),
		E("validflags", Bitfield(w.X1,
			B("validTOW", 1), B("validWKN", 1), B("validUTC", 1), B("reserved0", 1), B("utcStandard", 4),
		)),
	),
	"NAV-VELNED": Layout(
		S("iTOW", w.U4),
		S("velN", w.I4),
		S("velE", w.I4),
		S("velD", w.I4),
		S("speed", w.U4),
		S("gSpeed", w.U4),
		E("heading", Scaled(w.I4, w.Scale5)),
		S("sAcc", w.U4),
		E("cAcc", Scaled(w.U4, w.Scale5)),
	),

	"RXM-RAWX": Layout(
		S("rcvTow", w.R8),
		S("week", w.U2),
		S("leapS", w.I1),
		S("numMeas", w.U1),
		E("recStat", Bitfield(w.X1, B("leapSec", 1), B("clkReset", 1))),
		S("version", w.U1),
		S("reserved0", w.U2),
		E("group", Group(Ref("numMeas"),
			S("prMes", w.R8),
			S("cpMes", w.R8),
			S("doMes", w.R4),
			S("gnssId", w.U1),
			S("svId", w.U1),
			S("sigId", w.U1),
			S("freqId", w.U1),
			S("locktime", w.U2),
			S("cno", w.U1),
			E("prStdev", Bitfield(w.X1, B("prStd", 4))),
			E("cpStdev", Bitfield(w.X1, B("cpStd", 4))),
			E("doStdev", Bitfield(w.X1, B("doStd", 4))),
			E("trkStat", Bitfield(w.X1, B("prValid", 1), B("cpValid", 1), B("halfCyc", 1), B("subHalfCyc", 1))),
			S("reserved1", w.U1),
		)),
	),
	"RXM-SFRBX": Layout(
		S("gnssId", w.U1),
		S("svId", w.U1),
		S("sigId", w.U1),
		S("freqId", w.U1),
		S("numWords", w.U1),
		S("chn", w.U1),
		S("version", w.U1),
		S("reserved0", w.U1),
		E("group", Group(Ref("numWords"), S("dwrd", w.U4))),
	),

	"TIM-TM2": Layout(
		S("ch", w.U1),
		E("flags", Bitfield(w.X1,
			B("mode", 1), B("run", 1), B("newFallingEdge", 1), B("timeBase", 2),
			B("utc", 1), B("time", 1), B("newRisingEdge", 1),
		)),
		S("count", w.U2),
		S("wnR", w.U2),
		S("wnF", w.U2),
		S("towMsR", w.U4),
		S("towSubMsR", w.U4),
		S("towMsF", w.U4),
		S("towSubMsF", w.U4),
		S("accEst", w.U4),
	),
	"TIM-TP": Layout(
		S("towMS", w.U4),
		E("towSubMS", Scaled(w.U4, w.Pow2(-32))),
		S("qErr", w.I4),
		S("week", w.U2),
		E("flags", Bitfield(w.X1, B("timeBase", 1), B("utc", 1), B("raim", 2), B("qErrInvalid", 1))),
		E("refInfo", Bitfield(w.X1, B("timeRefGnss", 4), B("utcStandard", 4))),
	),
}

var infLayout = Layout(E("group", Group(Remaining, S("message", w.C(1)))))

// Input (SET) layouts. Most configuration messages accept exactly the
// layout they report, and reuse it.
var setPayloads = map[string]Payload{
	"AID-ALM": Layout(
		S("svid", w.U4),
		S("week", w.U4),
		E("optBlock", Group(Remaining, S("dwrd", w.U4))),
	),
	"AID-EPH": Layout(
		S("svid", w.U4),
		S("how", w.U4),
		E("optBlock", Group(Remaining, subframeWords()...)),
	),
	"AID-HUI": Layout(
		S("health", w.X4),
		S("utcA0", w.R8),
		S("utcA1", w.R8),
		S("utcTOW", w.I4),
		S("utcWNT", w.I2),
		S("utcLS", w.I2),
		S("utcWNF", w.I2),
		S("utcDNs", w.I2),
		S("utcLSF", w.I2),
		S("utcSpare", w.I2),
		S("klobA0", w.R4),
		S("klobA1", w.R4),
		S("klobA2", w.R4),
		S("klobA3", w.R4),
		S("klobB0", w.R4),
		S("klobB1", w.R4),
		S("klobB2", w.R4),
		S("klobB3", w.R4),
		S("flags", w.X4),
	),

	"CFG-CFG": Layout(
		E("clearMask", Bitfield(w.X4, cfgMaskBits()...)),
		E("saveMask", Bitfield(w.X4, cfgMaskBits()...)),
		E("loadMask", Bitfield(w.X4, cfgMaskBits()...)),
		E("deviceMask", Bitfield(w.X1,
			B("devBBR", 1), B("devFlash", 1), B("devEEPROM", 1), B("reserved1", 1), B("devSpiFlash", 1),
		)),
	),
	"CFG-GNSS": SameAsGet(),
	"CFG-MSG":  SameAsGet(),
	"CFG-NAV5": SameAsGet(),
	"CFG-NVS": Layout(
		E("clearMask", Bitfield(w.X4, nvsMaskBits()...)),
		E("saveMask", Bitfield(w.X4, nvsMaskBits()...)),
		E("loadMask", Bitfield(w.X4, nvsMaskBits()...)),
		E("deviceMask", Bitfield(w.X1,
			B("devBBR", 1), B("devFlash", 1), B("devEEPROM", 1), B("reserved9", 1), B("devSpiFlash", 1),
		)),
	),
	"CFG-PRT":  SameAsGet(),
	"CFG-RATE": SameAsGet(),
	"CFG-RST": Layout(
		E("navBbrMask", Bitfield(w.X2,
			B("eph", 1), B("alm", 1), B("health", 1), B("klob", 1), B("pos", 1), B("clkd", 1),
			B("osc", 1), B("utc", 1), B("rtc", 1), B("reserved2", 6), B("aop", 1),
		)),
		S("resetMode", w.U1),
		S("reserved0", w.U1),
	),
	"CFG-TP5": SameAsGet(),
	"CFG-VALDEL": Layout(
		S("version", w.U1),
		E("layers", Bitfield(w.X1, B("reserved1", 1), B("bbr", 1), B("flash", 1))),
		E("transaction", Bitfield(w.X1, B("action", 2))),
		S("reserved0", w.U1),
		E("group", Group(Remaining, S("keys", w.U4))),
	),
	"CFG-VALSET": Layout(
		S("version", w.U1),
		E("layers", Bitfield(w.X1, B("ram", 1), B("bbr", 1), B("flash", 1))),
		E("transaction", Bitfield(w.X1, B("action", 2))),
		S("reserved0", w.U1),
		E("group", Group(Remaining, S("cfgData", w.U1))),
	),

	"ESF-MEAS": SameAsGet(),

	"LOG-CREATE": Layout(
		S("version", w.U1),
		E("logCfg", Bitfield(w.X1, B("circular", 1))),
		S("reserved0", w.U1),
		S("logSize", w.U1),
		S("userDefinedSize", w.U4),
	),
	"LOG-ERASE": Layout(),
	"LOG-FINDTIME": Layout(
		S("version", w.U1),
		S("type", w.U1),
		S("year", w.U2),
		S("month", w.U1),
		S("day", w.U1),
		S("hour", w.U1),
		S("minute", w.U1),
		S("second", w.U1),
		S("reserved1", w.U1),
	),
	"LOG-RETRIEVE": Layout(
		S("startNumber", w.U4),
		S("entryCount", w.U4),
		S("version", w.U1),
		S("reserved0", w.U3),
	),
	"LOG-STRING": Layout(E("group", Group(Remaining, S("bytes", w.U1)))),

	"MGA-ANO": Layout(
		S("type", w.U1),
		S("version", w.U1),
		S("svId", w.U1),
		S("gnssId", w.U1),
		S("year", w.U1),
		S("month", w.U1),
		S("day", w.U1),
		S("reserved0", w.U1),
		S("data", w.U64),
		S("reserved1", w.U4),
	),
	"MGA-DBD": SameAsGet(),

	"RXM-PMREQ": Layout(
		S("duration", w.U4),
		E("flags", Bitfield(w.X4, B("reserved0", 1), B("backup", 1))),
	),
}

// Poll requests. Most carry no payload; a few select what to report.
var pollPayloads = map[string]Payload{
	"CFG-GNSS": Layout(),
	"CFG-MSG":  Layout(S("msgClass", w.U1), S("msgID", w.U1)),
	"CFG-NAV5": Layout(),
	"CFG-PRT":  Layout(S("portID", w.U1)),
	"CFG-RATE": Layout(),
	"CFG-TP5":  Layout(S("tpIdx", w.U1)),
	"CFG-VALGET": Layout(
		S("version", w.U1),
		S("layer", w.U1),
		S("position", w.U2),
		E("group", Group(Remaining, S("keys", w.U4))),
	),
	"ESF-STATUS":  Layout(),
	"MON-IO":      Layout(),
	"MON-VER":     Layout(),
	"NAV-CLOCK":   Layout(),
	"NAV-DOP":     Layout(),
	"NAV-ODO":     Layout(),
	"NAV-POSECEF": Layout(),
	"NAV-POSLLH":  Layout(),
	"NAV-PVT":     Layout(),
	"NAV-SAT":     Layout(),
	"NAV-STATUS":  Layout(),
	"NAV-TIMEGPS": Layout(),
	"NAV-TIMEUTC": Layout(),
	"NAV-VELNED":  Layout(),
	"RXM-RAWX":    Layout(),
	"TIM-TM2":     Layout(),
	"TIM-TP":      Layout(),
}

func subframeWords() []Entry {
	out := make([]Entry, 0, 24)
	for sf := 1; sf <= 3; sf++ {
		for d := 1; d <= 8; d++ {
			out = append(out, S(fmt.Sprintf("sf%dd%d", sf, d), w.U4))
		}
	}
	return out
}

func cfgMaskBits() []Bit {
	return []Bit{
		B("ioPort", 1), B("msgConf", 1), B("infMsg", 1), B("navConf", 1), B("rxmConf", 1),
		B("reserved1", 3), B("senConf", 1), B("rinvConf", 1), B("antConf", 1), B("logConf", 1), B("ftsConf", 1),
	}
}

func nvsMaskBits() []Bit {
	return []Bit{B("reserved0", 12), B("reserved1", 5), B("alm", 1), B("reserved2", 11), B("aop", 1)}
}
