package signal

const maxSignal Signal = 31
