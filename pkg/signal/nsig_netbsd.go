package signal

const maxSignal Signal = 63
